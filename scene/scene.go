package scene

import "github.com/achilleasa/glperf/registry"

// Category groups scenes for score aggregation.
type Category int

// Supported scene categories.
const (
	Generic Category = iota
	FillRate
)

func (c Category) String() string {
	switch c {
	case Generic:
		return "Generic"
	case FillRate:
		return "FillRate"
	}
	return "Undefined"
}

// Scene is implemented by every benchmark scene.
type Scene interface {
	// A unique human-readable name.
	Name() string

	// The category used for score aggregation.
	Category() Category

	// Allocate scene resources. Scenes should verify the minimum GLES
	// version they require here. If Startup fails neither Render nor
	// Shutdown will be called, so Startup must release anything it
	// allocated before returning the error.
	Startup(ctx *Context) error

	// Render a single frame.
	Render(ctx *Context, currentTime, deltaTime float64)

	// Release everything allocated by Startup.
	Shutdown(ctx *Context)

	// Called whenever the surface dimensions change.
	OnResized(width, height int)
}

// Base provides default no-op implementations for the optional Scene hooks.
// Scenes embed it and override what they need.
type Base struct{}

func (Base) Category() Category                                { return Generic }
func (Base) Startup(_ *Context) error                          { return nil }
func (Base) Render(_ *Context, currentTime, deltaTime float64) {}
func (Base) Shutdown(_ *Context)                               {}
func (Base) OnResized(width, height int)                       {}

var scenes = registry.New[Scene]()

// Register a scene factory under key. Scenes call this from their package
// init function; registering an existing key replaces the previous factory.
func Register(key string, factory func() Scene) {
	scenes.Register(key, factory)
}

// Registry returns the process-wide scene registry.
func Registry() *registry.Registry[Scene] {
	return scenes
}
