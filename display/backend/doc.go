// Package backend selects the display implementation at build time. The
// default build uses a glfw window; building with -tags headless switches to
// an EGL pbuffer context with driver libraries loaded at run time.
package backend
