package headless

import (
	"github.com/achilleasa/glperf/display"
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// EGL enums used by the headless backend.
const (
	eglNone                 = 0x3038
	eglAlphaSize            = 0x3021
	eglBlueSize             = 0x3022
	eglGreenSize            = 0x3023
	eglRedSize              = 0x3024
	eglDepthSize            = 0x3025
	eglStencilSize          = 0x3026
	eglSurfaceType          = 0x3033
	eglRenderableType       = 0x3040
	eglHeight               = 0x3056
	eglWidth                = 0x3057
	eglContextClientVersion = 0x3098
	eglOpenGLESAPI          = 0x30A0
	eglPbufferBit           = 0x0001
	eglOpenGLES2Bit         = 0x0004
	eglDefaultDisplay       = 0
	eglNoContext            = 0
)

// Function table for the dynamically loaded EGL library.
type eglLib struct {
	handle uintptr

	getProcAddress       func(name string) uintptr
	getDisplay           func(native uintptr) uintptr
	initialize           func(dpy uintptr, major, minor *int32) bool
	chooseConfig         func(dpy uintptr, attribs *int32, configs *uintptr, size int32, numConfigs *int32) bool
	bindAPI              func(api uint32) bool
	createContext        func(dpy, config, share uintptr, attribs *int32) uintptr
	queryContext         func(dpy, ctx uintptr, attribute int32, value *int32) bool
	createPbufferSurface func(dpy, config uintptr, attribs *int32) uintptr
	makeCurrent          func(dpy, draw, read, ctx uintptr) bool
	swapBuffers          func(dpy, surface uintptr) bool
	swapInterval         func(dpy uintptr, interval int32) bool
	destroySurface       func(dpy, surface uintptr) bool
	destroyContext       func(dpy, ctx uintptr) bool
	terminate            func(dpy uintptr) bool
}

// Open a shared library and return a lookup function for its symbols.
func openLibrary(path string) (uintptr, display.SymbolLookup, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "could not load %s", path)
	}

	lookup := func(name string) uintptr {
		sym, err := purego.Dlsym(handle, name)
		if err != nil {
			return 0
		}
		return sym
	}
	return handle, lookup, nil
}

// Load the EGL library and populate its function table. All unresolved
// symbols are reported in a single error.
func loadEGL(path string) (*eglLib, error) {
	handle, lookup, err := openLibrary(path)
	if err != nil {
		return nil, err
	}

	lib := &eglLib{handle: handle}
	entries := []struct {
		name string
		fn   interface{}
	}{
		{"eglGetProcAddress", &lib.getProcAddress},
		{"eglGetDisplay", &lib.getDisplay},
		{"eglInitialize", &lib.initialize},
		{"eglChooseConfig", &lib.chooseConfig},
		{"eglBindAPI", &lib.bindAPI},
		{"eglCreateContext", &lib.createContext},
		{"eglQueryContext", &lib.queryContext},
		{"eglCreatePbufferSurface", &lib.createPbufferSurface},
		{"eglMakeCurrent", &lib.makeCurrent},
		{"eglSwapBuffers", &lib.swapBuffers},
		{"eglSwapInterval", &lib.swapInterval},
		{"eglDestroySurface", &lib.destroySurface},
		{"eglDestroyContext", &lib.destroyContext},
		{"eglTerminate", &lib.terminate},
	}

	resolver := display.NewResolver(lookup, nil)
	for _, entry := range entries {
		sym, err := resolver.Resolve(entry.name)
		if err != nil {
			continue
		}
		purego.RegisterFunc(entry.fn, sym)
	}

	if err = resolver.Err(); err != nil {
		_ = purego.Dlclose(handle)
		return nil, errors.Wrap(err, path)
	}

	logger.Infof("loaded EGL library %s", path)
	return lib, nil
}

// Close the library handle.
func (l *eglLib) close() {
	if l.handle != 0 {
		_ = purego.Dlclose(l.handle)
		l.handle = 0
	}
}

// An EGL display connection with a GLES2 context bound to a pbuffer surface.
type eglContext struct {
	lib *eglLib

	dpy     uintptr
	config  uintptr
	ctx     uintptr
	surface uintptr

	clientVersion int32
}

// Initialize the default EGL display and create a GLES2 context. If width and
// height are positive a pbuffer surface of that size is created and made
// current.
func newEGLContext(lib *eglLib, width, height int) (*eglContext, error) {
	c := &eglContext{lib: lib}

	c.dpy = lib.getDisplay(eglDefaultDisplay)
	if c.dpy == 0 {
		return nil, errors.New("eglGetDisplay failed")
	}

	var major, minor int32
	if !lib.initialize(c.dpy, &major, &minor) {
		return nil, errors.New("eglInitialize failed")
	}
	logger.Debugf("initialized EGL %d.%d", major, minor)

	configAttribs := []int32{
		eglRedSize, 1,
		eglGreenSize, 1,
		eglBlueSize, 1,
		eglAlphaSize, 1,
		eglDepthSize, 1,
		eglStencilSize, 0,
		eglSurfaceType, eglPbufferBit,
		eglRenderableType, eglOpenGLES2Bit,
		eglNone,
	}
	var numConfigs int32
	if !lib.chooseConfig(c.dpy, &configAttribs[0], &c.config, 1, &numConfigs) || numConfigs <= 0 || c.config == 0 {
		c.destroy()
		return nil, errors.New("could not find a suitable EGL config")
	}

	lib.bindAPI(eglOpenGLESAPI)
	ctxAttribs := []int32{eglContextClientVersion, 2, eglNone}
	c.ctx = lib.createContext(c.dpy, c.config, eglNoContext, &ctxAttribs[0])
	if c.ctx == 0 {
		c.destroy()
		return nil, errors.New("eglCreateContext failed")
	}

	lib.queryContext(c.dpy, c.ctx, eglContextClientVersion, &c.clientVersion)
	if c.clientVersion < 2 {
		c.destroy()
		return nil, errors.Wrapf(display.ErrUnsupportedVersion, "EGL context client version %d < 2", c.clientVersion)
	}

	if width <= 0 || height <= 0 {
		return c, nil
	}

	surfaceAttribs := []int32{eglWidth, int32(width), eglHeight, int32(height), eglNone}
	c.surface = lib.createPbufferSurface(c.dpy, c.config, &surfaceAttribs[0])
	if c.surface == 0 {
		c.destroy()
		return nil, errors.New("eglCreatePbufferSurface failed")
	}

	if !lib.makeCurrent(c.dpy, c.surface, c.surface, c.ctx) {
		c.destroy()
		return nil, errors.New("eglMakeCurrent failed")
	}

	// Never throttle presentation to the refresh rate.
	lib.swapInterval(c.dpy, 0)
	return c, nil
}

func (c *eglContext) swap() {
	c.lib.swapBuffers(c.dpy, c.surface)
}

func (c *eglContext) destroy() {
	if c.dpy == 0 {
		return
	}
	c.lib.makeCurrent(c.dpy, 0, 0, eglNoContext)
	if c.ctx != 0 {
		c.lib.destroyContext(c.dpy, c.ctx)
		c.ctx = 0
	}
	if c.surface != 0 {
		c.lib.destroySurface(c.dpy, c.surface)
		c.surface = 0
	}
	c.lib.terminate(c.dpy)
	c.dpy = 0
}
