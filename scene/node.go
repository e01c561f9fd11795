package scene

import (
	"fmt"

	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/log"
)

// Weight limits.
const (
	MinWeight     = 1
	MaxWeight     = 20
	DefaultWeight = 10
)

var logger = log.New("scene")

// Result is the terminal outcome of a Node run.
type Result uint8

// Possible run results.
const (
	Success Result = iota
	Failed
	Abort
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// State tracks a Node through its single run.
type State uint8

// Node states.
const (
	NotStarted State = iota
	Running
	Done
)

// Node wraps a Scene with the harness state needed to run and score it. A node
// can only be run once.
type Node struct {
	key   string
	scene Scene

	weight int
	width  int
	height int

	state  State
	result Result

	startTime   float64
	endTime     float64
	lastElapsed float64
	frames      uint64
	averageFPS  float64

	overlay Overlay
}

// Create a node for a scene registered under key.
func NewNode(key string, sc Scene) *Node {
	return &Node{
		key:    key,
		scene:  sc,
		weight: DefaultWeight,
		width:  display.DefaultWidth,
		height: display.DefaultHeight,
	}
}

// Key returns the registry key the node was created from.
func (n *Node) Key() string { return n.key }

// Name returns the scene name.
func (n *Node) Name() string { return n.scene.Name() }

// Category returns the scene category.
func (n *Node) Category() Category { return n.scene.Category() }

// Scene returns the wrapped scene.
func (n *Node) Scene() Scene { return n.scene }

// Weight returns the scene weight.
func (n *Node) Weight() int { return n.weight }

// SetWeight sets the weight clamped to [MinWeight, MaxWeight].
func (n *Node) SetWeight(weight int) {
	n.weight = min(MaxWeight, max(MinWeight, weight))
}

// Size returns the last dimensions delivered to the node.
func (n *Node) Size() (width, height int) { return n.width, n.height }

// State returns the node state.
func (n *Node) State() State { return n.state }

// Result returns the outcome of the run. It is only meaningful once the
// node state is Done.
func (n *Node) Result() Result { return n.result }

// AverageFPS returns the average frame rate of a completed run.
func (n *Node) AverageFPS() float64 { return n.averageFPS }

// Frames returns the number of frames rendered.
func (n *Node) Frames() uint64 { return n.frames }

// LastElapsed returns the time since start at the end of the last frame.
func (n *Node) LastElapsed() float64 { return n.lastElapsed }

// OnResized implements display.RenderNode. A zero height is replaced with 1 so
// that aspect ratios stay finite.
func (n *Node) OnResized(width, height int) {
	if height == 0 {
		height = 1
	}

	n.width = width
	n.height = height

	if n.overlay != nil {
		n.overlay.Resize(width, height)
	}
	n.scene.OnResized(width, height)
}

// Run executes the scene render loop for the configured duration.
func (n *Node) Run(env *Env) Result {
	if n.state != NotStarted {
		logger.Errorf("%s: %s", n.Name(), ErrAlreadyRun)
		return Failed
	}
	n.state = Running
	n.result = n.run(env)
	n.state = Done
	return n.result
}

func (n *Node) run(env *Env) Result {
	ctx := &Context{node: n, surface: env.Surface}

	env.Surface.SetTitle(fmt.Sprintf("glperf [ %s ]", n.Name()))
	env.Surface.SetRenderNode(n)

	overlay, err := env.NewOverlay()
	if err != nil {
		logger.Errorf("%s: could not initialize text overlay: %s", n.Name(), err)
		return Failed
	}
	n.overlay = overlay
	overlay.Resize(n.width, n.height)

	n.startTime = env.Clock.Now()
	if err = n.scene.Startup(ctx); err != nil {
		logger.Errorf("%s: startup failed: %s", n.Name(), err)
		n.closeOverlay()
		return Failed
	}

	result := n.loop(ctx, env)

	n.closeOverlay()
	n.scene.Shutdown(ctx)

	n.endTime = env.Clock.Now()
	if span := n.endTime - n.startTime; span > 0 {
		n.averageFPS = float64(n.frames) / span
	}
	return result
}

func (n *Node) loop(ctx *Context, env *Env) Result {
	duration := env.duration()
	prevTime := n.startTime
	fpsSampleTime := n.startTime

	// The frame delta shown by the FPS counter; zero until the first
	// nonzero delta is observed.
	var displayedDelta, lastGoodDelta float64

	for {
		now := env.Clock.Now()
		delta := now - prevTime
		n.scene.Render(ctx, now, delta)

		if delta > 0 {
			lastGoodDelta = delta
		}
		switch {
		case displayedDelta == 0:
			displayedDelta = lastGoodDelta
		case now-fpsSampleTime > fpsRefreshInterval:
			fpsSampleTime = now
			displayedDelta = lastGoodDelta
		}

		if displayedDelta > 0 {
			n.overlay.Render(fmt.Sprintf("fps:%.2f", 1.0/displayedDelta))
		}

		env.Surface.SwapBuffer()

		n.frames++
		prevTime = now
		n.lastElapsed = prevTime - n.startTime

		if !env.Surface.ProcessInput() {
			return Abort
		}
		if n.lastElapsed >= duration {
			return Success
		}
	}
}

func (n *Node) closeOverlay() {
	if n.overlay != nil {
		n.overlay.Close()
		n.overlay = nil
	}
}
