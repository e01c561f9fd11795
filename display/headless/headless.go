// Package headless implements a display backend that renders into an EGL
// pbuffer. EGL and the GLES driver are loaded at run time; an X11 window is
// opened alongside when an X server is reachable.
package headless

import (
	"strings"
	"unsafe"

	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/log"
	"github.com/achilleasa/glperf/timer"
	"github.com/ebitengine/purego"
	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/pkg/errors"
)

const backendName = "egl"

var logger = log.New("display")

type eglDisplay struct {
	display.Surface

	opts  display.Options
	clock *timer.Monotonic
	info  display.Info

	egl        *eglLib
	ctx        *eglContext
	glesHandle uintptr
	xwin       *xWindow
}

// Create a new headless display.
func New(opts display.Options) display.Display {
	opts = opts.WithDefaults()
	return &eglDisplay{
		Surface: display.NewSurface(opts.Width, opts.Height),
		opts:    opts,
	}
}

const glVersion = 0x1F02

type getStringFunc func(name uint32) string

// Bind glGetString from the GLES driver, falling back to eglGetProcAddress.
func bindGetString(resolver *display.Resolver) (getStringFunc, error) {
	addr, err := resolver.Resolve("glGetString")
	if err != nil {
		return nil, err
	}

	var fn getStringFunc
	purego.RegisterFunc(&fn, addr)
	return fn, nil
}

// Read and parse the version string of the current context.
func contextVersion(getString getStringFunc) (int, error) {
	return display.ParseGLESVersion(getString(glVersion))
}

// IsSupported makes a 1x1 pbuffer context current, queries its GLES version
// and releases it.
func (d *eglDisplay) IsSupported() bool {
	if d.Created() {
		return true
	}

	lib, err := loadEGL(d.opts.EGLLibrary)
	if err != nil {
		logger.Error(err)
		return false
	}
	defer lib.close()

	handle, glesLookup, err := openLibrary(d.opts.GLESLibrary)
	if err != nil {
		logger.Error(err)
		return false
	}
	defer func() { _ = purego.Dlclose(handle) }()

	ctx, err := newEGLContext(lib, 1, 1)
	if err != nil {
		logger.Error(err)
		return false
	}
	defer ctx.destroy()

	getString, err := bindGetString(display.NewResolver(glesLookup, lib.getProcAddress))
	if err != nil {
		logger.Error(err)
		return false
	}

	version, err := contextVersion(getString)
	if err != nil {
		logger.Error(err)
		return false
	}
	logger.Debugf("headless context supports GLES %d", version)
	return true
}

func (d *eglDisplay) Create() error {
	proceed, err := d.BeginCreate()
	if !proceed {
		return err
	}

	err = d.create()
	if err != nil {
		d.destroy()
	}
	return d.EndCreate(err)
}

func (d *eglDisplay) create() error {
	var err error
	d.clock = timer.NewMonotonic()
	if !d.clock.IsMonotonic() {
		logger.Warning("no monotonic clock available; frame timings may drift")
	}

	if d.egl, err = loadEGL(d.opts.EGLLibrary); err != nil {
		return err
	}

	handle, glesLookup, err := openLibrary(d.opts.GLESLibrary)
	if err != nil {
		return err
	}
	d.glesHandle = handle
	logger.Infof("loaded GLES library %s", d.opts.GLESLibrary)

	if d.opts.FullScreen {
		logger.Warning("full screen mode is not supported by the headless backend")
	}

	width, height := d.Size()
	if d.ctx, err = newEGLContext(d.egl, width, height); err != nil {
		return err
	}

	resolver := display.NewResolver(glesLookup, d.egl.getProcAddress)
	err = gles2.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr, err := resolver.Resolve(name)
		if err != nil {
			return nil
		}
		return unsafe.Pointer(addr)
	})
	if err != nil {
		return errors.Wrapf(err, "could not load GLES entry points (unresolved: %s)", strings.Join(resolver.Missing(), ", "))
	}
	if missing := resolver.Missing(); len(missing) != 0 {
		logger.Debugf("optional entry points not available: %s", strings.Join(missing, ", "))
	}

	d.info = display.Info{
		Backend:  backendName,
		Vendor:   gles2.GoStr(gles2.GetString(gles2.VENDOR)),
		Renderer: gles2.GoStr(gles2.GetString(gles2.RENDERER)),
		Version:  gles2.GoStr(gles2.GetString(gles2.VERSION)),
	}

	version, err := display.ParseGLESVersion(d.info.Version)
	if err != nil {
		return err
	}
	d.SetGLESVersion(version)

	if d.xwin, err = openXWindow(width, height, d.opts.Title); err != nil {
		logger.Infof("running without a status window: %s", err)
		d.xwin = nil
	}

	logger.Noticef("OpenGL information\n%s", d.info)
	return nil
}

func (d *eglDisplay) SwapBuffer() {
	if d.ctx == nil {
		return
	}
	gles2.Finish()
	d.ctx.swap()
}

func (d *eglDisplay) ProcessInput() bool {
	if d.Interrupted() {
		return false
	}
	if d.xwin != nil {
		return d.xwin.poll()
	}
	return true
}

func (d *eglDisplay) SetTitle(title string) {
	if d.xwin != nil {
		d.xwin.setTitle(title)
	}
}

func (d *eglDisplay) Clock() timer.Source {
	if d.clock == nil {
		d.clock = timer.NewMonotonic()
	}
	return d.clock
}

func (d *eglDisplay) Info() display.Info {
	return d.info
}

func (d *eglDisplay) Close() {
	if !d.BeginClose() {
		return
	}
	d.destroy()
}

func (d *eglDisplay) destroy() {
	if d.xwin != nil {
		d.xwin.close()
		d.xwin = nil
	}
	if d.ctx != nil {
		d.ctx.destroy()
		d.ctx = nil
	}
	if d.glesHandle != 0 {
		_ = purego.Dlclose(d.glesHandle)
		d.glesHandle = 0
	}
	if d.egl != nil {
		d.egl.close()
		d.egl = nil
	}
}
