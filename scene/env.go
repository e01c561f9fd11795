package scene

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/timer"
)

// TotalTime is the wall time in seconds each scene renders for.
const TotalTime = 20.0

// The interval in seconds between refreshes of the on-screen FPS counter.
const fpsRefreshInterval = 0.9

// Surface is the subset of display.Display used while running a scene.
type Surface interface {
	SetRenderNode(node display.RenderNode)
	SetTitle(title string)
	SwapBuffer()
	ProcessInput() bool
	GLESVersion() int
}

// Overlay draws status text on top of the rendered frame.
type Overlay interface {
	Resize(width, height int)
	Render(text string)
	Close()
}

// Env bundles the collaborators a Node needs to run.
type Env struct {
	Surface Surface
	Clock   timer.Source

	// Creates the text overlay for a run.
	NewOverlay func() (Overlay, error)

	// Run duration in seconds; defaults to TotalTime.
	Duration float64
}

func (e *Env) duration() float64 {
	if e.Duration > 0 {
		return e.Duration
	}
	return TotalTime
}

// Context is passed to scene hooks.
type Context struct {
	node    *Node
	surface Surface
}

// Width returns the current surface width.
func (c *Context) Width() int {
	return c.node.width
}

// Height returns the current surface height. It is never zero.
func (c *Context) Height() int {
	return c.node.height
}

// Ratio returns width / height for projection setup.
func (c *Context) Ratio() float32 {
	return float32(c.node.width) / float32(c.node.height)
}

// GLESVersion returns the version reported by the display.
func (c *Context) GLESVersion() int {
	return c.surface.GLESVersion()
}

// RequireGLES returns ErrUnsupportedVersion if the display version is lower
// than minVersion.
func (c *Context) RequireGLES(minVersion int) error {
	if c.surface.GLESVersion() < minVersion {
		return ErrUnsupportedVersion
	}
	return nil
}
