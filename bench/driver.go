package bench

import (
	"slices"
	"sort"

	"github.com/achilleasa/glperf/log"
	"github.com/achilleasa/glperf/registry"
	"github.com/achilleasa/glperf/scene"
	"github.com/google/uuid"
)

var logger = log.New("bench")

// Reporter receives benchmark results as they become available.
type Reporter interface {
	// Called once for every scene that reached a terminal state.
	SceneCompleted(node *scene.Node)

	// Called once after the run ends or is aborted.
	Summary(runID string, scores []CategoryScore)
}

// Outcome describes a completed ExecuteAll invocation.
type Outcome struct {
	// A unique id for this run.
	RunID string

	// True if the user aborted the run.
	Aborted bool

	// Number of scene runs that were executed, including the aborted one.
	Executed int
}

// Driver selects, runs and scores benchmark scenes.
type Driver struct {
	registry *registry.Registry[scene.Scene]
	weights  WeightTable
	env      *scene.Env
	reporter Reporter

	scores Scoreboard
}

// NewDriver creates a driver for the scenes in reg. The weights table and
// reporter are optional.
func NewDriver(reg *registry.Registry[scene.Scene], weights WeightTable, env *scene.Env, reporter Reporter) *Driver {
	return &Driver{
		registry: reg,
		weights:  weights,
		env:      env,
		reporter: reporter,
		scores:   make(Scoreboard),
	}
}

// SelectScenes instantiates the registered scenes whose keys appear in names
// (or all scenes if names is empty), applies weight overrides and stably
// sorts the result by category.
func (d *Driver) SelectScenes(names []string) []*scene.Node {
	var nodes []*scene.Node
	for key := range d.registry.Keys() {
		if len(names) != 0 && !slices.Contains(names, key) {
			continue
		}

		node, ok := d.instantiate(key)
		if !ok {
			continue
		}
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Category() < nodes[j].Category()
	})
	return nodes
}

func (d *Driver) instantiate(key string) (*scene.Node, bool) {
	sc, ok := d.registry.Create(key)
	if !ok {
		logger.Warningf("scene %q is no longer registered", key)
		return nil, false
	}

	node := scene.NewNode(key, sc)
	if weight, ok := d.weights.Lookup(key); ok {
		node.SetWeight(weight)
	}
	return node, true
}

// ExecuteAll runs the supplied nodes in order. When loopForever is set the
// list is restarted from the beginning once exhausted, using fresh scene
// instances, until the user aborts. An abort always ends the run.
func (d *Driver) ExecuteAll(nodes []*scene.Node, loopForever bool) Outcome {
	out := Outcome{RunID: uuid.New().String()}
	if len(nodes) == 0 {
		return out
	}

	logger.Infof("starting run %s with %d scene(s)", out.RunID, len(nodes))
	for index := 0; index < len(nodes); {
		node := nodes[index]
		if node.State() != scene.NotStarted {
			fresh, ok := d.instantiate(node.Key())
			if !ok {
				break
			}
			fresh.SetWeight(node.Weight())
			nodes[index], node = fresh, fresh
		}

		result := node.Run(d.env)
		out.Executed++
		if d.reporter != nil {
			d.reporter.SceneCompleted(node)
		}

		if result == scene.Abort {
			logger.Noticef("%s: aborted by user; stopping run", node.Name())
			out.Aborted = true
			break
		}

		logger.Debugf("%s: %s (%.2f fps, %d frames in %.2fs, weight %d)", node.Name(), result, node.AverageFPS(), node.Frames(), node.LastElapsed(), node.Weight())
		d.scores.Add(node.Category(), node.AverageFPS(), node.Weight())

		// A scene that fails before its frame loop never polls for input.
		if result == scene.Failed && !d.env.Surface.ProcessInput() {
			logger.Noticef("%s: exit requested; stopping run", node.Name())
			out.Aborted = true
			break
		}

		index++
		if index == len(nodes) && loopForever {
			index = 0
		}
	}

	return out
}

// Report returns the aggregated score of every category with at least one
// completed scene, in ascending category order.
func (d *Driver) Report() []CategoryScore {
	return d.scores.Summary()
}

// Run selects the requested scenes, executes them and hands the category
// scores to the reporter. It returns false if no registered scene matched.
func (d *Driver) Run(names []string, loopForever bool) (Outcome, bool) {
	nodes := d.SelectScenes(names)
	if len(nodes) == 0 {
		return Outcome{}, false
	}

	out := d.ExecuteAll(nodes, loopForever)
	if d.reporter != nil {
		d.reporter.Summary(out.RunID, d.Report())
	}
	return out, true
}
