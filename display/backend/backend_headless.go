//go:build headless

package backend

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/display/headless"
)

// Name of the backend compiled into this binary.
const Name = "egl"

// New creates the display backend selected at build time.
func New(opts display.Options) display.Display {
	return headless.New(opts)
}
