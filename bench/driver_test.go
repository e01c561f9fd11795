package bench

import (
	"errors"
	"testing"

	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/registry"
	"github.com/achilleasa/glperf/scene"
)

type fakeSurface struct {
	polls   int
	abortAt int
}

func (s *fakeSurface) SetRenderNode(node display.RenderNode) { node.OnResized(640, 480) }
func (s *fakeSurface) SetTitle(_ string)                     {}
func (s *fakeSurface) SwapBuffer()                           {}
func (s *fakeSurface) GLESVersion() int                      { return 200 }
func (s *fakeSurface) ProcessInput() bool {
	s.polls++
	return s.abortAt == 0 || s.polls < s.abortAt
}

type stepClock struct {
	now  float64
	step float64
}

func (c *stepClock) Now() float64 {
	v := c.now
	c.now += c.step
	return v
}

type nopOverlay struct{}

func (nopOverlay) Resize(_, _ int) {}
func (nopOverlay) Render(_ string) {}
func (nopOverlay) Close()          {}

type testScene struct {
	scene.Base
	name       string
	category   scene.Category
	startupErr error
}

func (s *testScene) Name() string                   { return s.name }
func (s *testScene) Category() scene.Category       { return s.category }
func (s *testScene) Startup(_ *scene.Context) error { return s.startupErr }

type recordingReporter struct {
	rows    []string
	results []scene.Result
	runID   string
	scores  []CategoryScore
}

func (r *recordingReporter) SceneCompleted(node *scene.Node) {
	r.rows = append(r.rows, node.Name())
	r.results = append(r.results, node.Result())
}

func (r *recordingReporter) Summary(runID string, scores []CategoryScore) {
	r.runID = runID
	r.scores = scores
}

// Each scene renders exactly 4 frames with this setup.
func makeEnv(surface *fakeSurface) *scene.Env {
	return &scene.Env{
		Surface:    surface,
		Clock:      &stepClock{step: 0.25},
		NewOverlay: func() (scene.Overlay, error) { return nopOverlay{}, nil },
		Duration:   1.0,
	}
}

type sceneDef struct {
	key        string
	category   scene.Category
	startupErr error
}

func makeRegistry(defs []sceneDef, created map[string]int) *registry.Registry[scene.Scene] {
	reg := registry.New[scene.Scene]()
	for _, def := range defs {
		reg.Register(def.key, func() scene.Scene {
			if created != nil {
				created[def.key]++
			}
			return &testScene{name: def.key, category: def.category, startupErr: def.startupErr}
		})
	}
	return reg
}

func nodeKeys(nodes []*scene.Node) []string {
	keys := make([]string, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key()
	}
	return keys
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectScenesAppliesWeights(t *testing.T) {
	reg := makeRegistry([]sceneDef{
		{key: "fill", category: scene.FillRate},
		{key: "fire", category: scene.Generic},
	}, nil)

	d := NewDriver(reg, WeightTable{"fill": 5}, nil, nil)
	nodes := d.SelectScenes(nil)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes; got %d", len(nodes))
	}

	for _, n := range nodes {
		expWeight := scene.DefaultWeight
		if n.Key() == "fill" {
			expWeight = 5
		}
		if n.Weight() != expWeight {
			t.Fatalf("expected weight of %s to be %d; got %d", n.Key(), expWeight, n.Weight())
		}
	}
}

func TestSelectScenesClampsWeights(t *testing.T) {
	reg := makeRegistry([]sceneDef{{key: "a"}, {key: "b"}}, nil)

	d := NewDriver(reg, WeightTable{"a": -3, "b": 300}, nil, nil)
	nodes := d.SelectScenes(nil)
	if nodes[0].Weight() != scene.MinWeight || nodes[1].Weight() != scene.MaxWeight {
		t.Fatalf("expected weights to be clamped to [%d, %d]; got %d and %d", scene.MinWeight, scene.MaxWeight, nodes[0].Weight(), nodes[1].Weight())
	}
}

func TestSelectScenesOrdering(t *testing.T) {
	reg := makeRegistry([]sceneDef{
		{key: "pixel", category: scene.FillRate},
		{key: "fire", category: scene.Generic},
		{key: "fill", category: scene.FillRate},
		{key: "shader", category: scene.Generic},
	}, nil)

	type spec struct {
		names []string
		exp   []string
	}

	specs := []spec{
		{nil, []string{"fire", "shader", "pixel", "fill"}},
		{[]string{"fill"}, []string{"fill"}},
		{[]string{"fill", "fire"}, []string{"fire", "fill"}},
		{[]string{"missing"}, []string{}},
	}

	d := NewDriver(reg, nil, nil, nil)
	for specIndex, s := range specs {
		got := nodeKeys(d.SelectScenes(s.names))
		if !equalStrings(got, s.exp) {
			t.Fatalf("[spec %d] expected selection %v; got %v", specIndex, s.exp, got)
		}
	}
}

func TestScoreAggregation(t *testing.T) {
	sb := make(Scoreboard)
	sb.Add(scene.Generic, 50, 10)
	sb.Add(scene.Generic, 30, 10)
	sb.Add(scene.FillRate, 100, 4)

	summary := sb.Summary()
	if len(summary) != 2 {
		t.Fatalf("expected 2 category scores; got %d", len(summary))
	}
	if summary[0].Category != scene.Generic || summary[1].Category != scene.FillRate {
		t.Fatalf("expected categories in ascending order; got %v", summary)
	}
	if summary[0].Score != 40 {
		t.Fatalf("expected Generic score to be 40; got %f", summary[0].Score)
	}
	if summary[0].Scenes != 2 || summary[0].Weight != 20 {
		t.Fatalf("expected 2 scenes with total weight 20; got %d and %d", summary[0].Scenes, summary[0].Weight)
	}
	if summary[1].Score != 100 {
		t.Fatalf("expected FillRate score to be 100; got %f", summary[1].Score)
	}
}

func TestExecuteAllFoldsFailedScenes(t *testing.T) {
	reg := makeRegistry([]sceneDef{
		{key: "ok"},
		{key: "broken", startupErr: errors.New("shader compile failed")},
	}, nil)

	rep := &recordingReporter{}
	d := NewDriver(reg, nil, makeEnv(&fakeSurface{}), rep)
	out, matched := d.Run(nil, false)
	if !matched {
		t.Fatal("expected scenes to match")
	}
	if out.Aborted || out.Executed != 2 {
		t.Fatalf("expected 2 executed scenes without abort; got %+v", out)
	}
	if out.RunID == "" || rep.runID != out.RunID {
		t.Fatalf("expected reporter to receive run id %q; got %q", out.RunID, rep.runID)
	}
	if rep.results[0] != scene.Success || rep.results[1] != scene.Failed {
		t.Fatalf("expected results [success failed]; got %v", rep.results)
	}

	if len(rep.scores) != 1 {
		t.Fatalf("expected 1 category score; got %d", len(rep.scores))
	}
	if rep.scores[0].Scenes != 2 || rep.scores[0].Weight != 2*scene.DefaultWeight {
		t.Fatalf("expected failed scene to be folded into the score; got %+v", rep.scores[0])
	}
	// The successful scene renders 4 frames in 1.25s; the failed one scores 0.
	if exp := (4 / 1.25) / 2; rep.scores[0].Score != exp {
		t.Fatalf("expected score %f; got %f", exp, rep.scores[0].Score)
	}
}

func TestExecuteAllAbortStopsForeverLoop(t *testing.T) {
	created := make(map[string]int)
	reg := makeRegistry([]sceneDef{
		{key: "a", category: scene.Generic},
		{key: "b", category: scene.FillRate},
	}, created)

	// 4 polls per scene; the 10th poll happens during the second lap.
	rep := &recordingReporter{}
	d := NewDriver(reg, WeightTable{"a": 7}, makeEnv(&fakeSurface{abortAt: 10}), rep)

	nodes := d.SelectScenes(nil)
	out := d.ExecuteAll(nodes, true)
	if !out.Aborted {
		t.Fatal("expected run to be aborted")
	}
	if out.Executed != 3 {
		t.Fatalf("expected 3 executed scenes; got %d", out.Executed)
	}

	expRows := []string{"a", "b", "a"}
	if !equalStrings(rep.rows, expRows) {
		t.Fatalf("expected rows %v; got %v", expRows, rep.rows)
	}
	if rep.results[2] != scene.Abort {
		t.Fatalf("expected last result to be abort; got %s", rep.results[2])
	}
	if created["a"] != 2 || created["b"] != 1 {
		t.Fatalf("expected a fresh instance per lap; got %v", created)
	}
	if nodes[0].Weight() != 7 {
		t.Fatalf("expected fresh node to keep weight 7; got %d", nodes[0].Weight())
	}

	// The aborted run is not folded into the score.
	for _, s := range d.Report() {
		if s.Category == scene.Generic && s.Scenes != 1 {
			t.Fatalf("expected 1 completed Generic scene; got %d", s.Scenes)
		}
	}
}

func TestExecuteAllExitAfterFailedScene(t *testing.T) {
	created := make(map[string]int)
	reg := makeRegistry([]sceneDef{
		{key: "broken", startupErr: errors.New("shader compile failed")},
	}, created)

	surface := &fakeSurface{abortAt: 1}
	rep := &recordingReporter{}
	d := NewDriver(reg, nil, makeEnv(surface), rep)

	out := d.ExecuteAll(d.SelectScenes(nil), true)
	if !out.Aborted || out.Executed != 1 {
		t.Fatalf("expected the forever loop to stop after 1 scene; got %+v", out)
	}
	if surface.polls != 1 {
		t.Fatalf("expected input to be polled once; got %d", surface.polls)
	}
	if len(rep.results) != 1 || rep.results[0] != scene.Failed {
		t.Fatalf("expected a single failed row; got %v", rep.results)
	}
	if created["broken"] != 1 {
		t.Fatalf("expected no further instances; got %d", created["broken"])
	}

	summary := d.Report()
	if len(summary) != 1 || summary[0].Scenes != 1 {
		t.Fatalf("expected the failed scene to be scored; got %+v", summary)
	}
}

func TestRunWithNoMatchingScenes(t *testing.T) {
	rep := &recordingReporter{}
	d := NewDriver(makeRegistry([]sceneDef{{key: "a"}}, nil), nil, makeEnv(&fakeSurface{}), rep)
	if _, matched := d.Run([]string{"nope"}, false); matched {
		t.Fatal("expected no scenes to match")
	}
	if len(rep.rows) != 0 || rep.runID != "" {
		t.Fatal("expected reporter not to be invoked")
	}
}
