package bench

import (
	"sort"

	"github.com/achilleasa/glperf/scene"
)

// Score accumulates weighted frame rates for a scene category.
type Score struct {
	// Sum of AverageFPS * weight over all folded scenes.
	Value float64

	// Number of folded scenes.
	Count int

	// Sum of the weights of all folded scenes.
	Weight int
}

// Add folds a scene result into the score.
func (s *Score) Add(fps float64, weight int) {
	s.Value += fps * float64(weight)
	s.Count++
	s.Weight += weight
}

// Average returns the weighted average frame rate.
func (s Score) Average() float64 {
	if s.Weight == 0 {
		return 0
	}
	return s.Value / float64(s.Weight)
}

// CategoryScore is a single line of the final report.
type CategoryScore struct {
	Category scene.Category
	Scenes   int
	Weight   int
	Score    float64
}

// Scoreboard tracks scores per category.
type Scoreboard map[scene.Category]*Score

// Add folds a scene result into its category.
func (sb Scoreboard) Add(category scene.Category, fps float64, weight int) {
	s, ok := sb[category]
	if !ok {
		s = &Score{}
		sb[category] = s
	}
	s.Add(fps, weight)
}

// Summary returns one entry per category with at least one folded scene, in
// ascending category order.
func (sb Scoreboard) Summary() []CategoryScore {
	out := make([]CategoryScore, 0, len(sb))
	for category, s := range sb {
		if s.Count == 0 {
			continue
		}
		out = append(out, CategoryScore{
			Category: category,
			Scenes:   s.Count,
			Weight:   s.Weight,
			Score:    s.Average(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
