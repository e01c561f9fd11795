package display

import (
	"fmt"

	"github.com/achilleasa/glperf/timer"
)

// MinGLESVersion is the lowest GLES version (major*100 + minor*10) a backend
// accepts.
const MinGLESVersion = 200

// Default surface dimensions.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// A RenderNode receives the surface dimensions whenever they change.
type RenderNode interface {
	OnResized(width, height int)
}

// Options control how the display surface is created.
type Options struct {
	Width      int
	Height     int
	FullScreen bool
	Title      string

	// Driver libraries loaded by the headless backend.
	EGLLibrary  string
	GLESLibrary string
}

// Information reported by the GL driver after the context is created.
type Info struct {
	Backend  string
	Vendor   string
	Renderer string
	Version  string
}

// Implements Stringer.
func (i Info) String() string {
	return fmt.Sprintf(
		"    Backend:      %s\n    GL_VENDOR:    %s\n    GL_RENDERER:  %s\n    GL_VERSION:   %s",
		i.Backend,
		i.Vendor,
		i.Renderer,
		i.Version,
	)
}

// Display owns the single live rendering surface and its GLES context.
type Display interface {
	// Check whether a context with a supported GLES version can be created.
	// The check does not affect the context created by Create.
	IsSupported() bool

	// Allocate the surface and resolve all GL entry points. A failed Create
	// cannot be retried.
	Create() error

	// Present the current frame.
	SwapBuffer()

	// Poll pending input. Returns false if the user requested to exit.
	ProcessInput() bool

	// Bind the node that receives resize notifications.
	SetRenderNode(node RenderNode)

	// Update the surface title, where the backend has one.
	SetTitle(title string)

	// The detected GLES version encoded as major*100 + minor*10.
	GLESVersion() int

	// The backend time source.
	Clock() timer.Source

	// Driver information.
	Info() Info

	// Release the surface and context.
	Close()
}

// Fill in default values for unset options.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = "glperf"
	}
	if o.EGLLibrary == "" {
		o.EGLLibrary = "libEGL.so.1"
	}
	if o.GLESLibrary == "" {
		o.GLESLibrary = "libGLESv2.so.2"
	}
	return o
}
