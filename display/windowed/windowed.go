// Package windowed implements a display backend on top of a glfw window with
// an EGL-created GLES 2.0 context.
package windowed

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/log"
	"github.com/achilleasa/glperf/timer"
	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

const backendName = "glfw"

var logger = log.New("display")

type glfwDisplay struct {
	display.Surface

	opts   display.Options
	window *glfw.Window
	info   display.Info
}

// Create a new glfw display. The window is not opened until Create is called.
func New(opts display.Options) display.Display {
	opts = opts.WithDefaults()
	return &glfwDisplay{
		Surface: display.NewSurface(opts.Width, opts.Height),
		opts:    opts,
	}
}

func setContextHints() {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
}

// IsSupported opens a hidden window, checks the GLES version and tears
// everything down again.
func (d *glfwDisplay) IsSupported() bool {
	if d.Created() {
		return true
	}

	if err := glfw.Init(); err != nil {
		logger.Errorf("failed to initialize glfw: %s", err)
		return false
	}
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	setContextHints()

	win, err := glfw.CreateWindow(200, 200, "glperf", nil, nil)
	if err != nil {
		logger.Errorf("could not create hidden window: %s", err)
		return false
	}
	defer win.Destroy()
	win.MakeContextCurrent()

	if err = gles2.InitWithProcAddrFunc(glfw.GetProcAddress); err != nil {
		logger.Errorf("could not load GLES entry points: %s", err)
		return false
	}

	if _, err = display.ParseGLESVersion(gles2.GoStr(gles2.GetString(gles2.VERSION))); err != nil {
		logger.Error(err)
		return false
	}
	return true
}

func (d *glfwDisplay) Create() error {
	proceed, err := d.BeginCreate()
	if !proceed {
		return err
	}
	return d.EndCreate(d.create())
}

func (d *glfwDisplay) create() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize glfw")
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Samples, 16)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	setContextHints()

	width, height := d.Size()
	desktopW, desktopH := width, height
	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			desktopW, desktopH = mode.Width, mode.Height
		}
	}

	var fullScreenMonitor *glfw.Monitor
	if d.opts.FullScreen && monitor != nil {
		width, height = desktopW, desktopH
		fullScreenMonitor = monitor
	}

	win, err := glfw.CreateWindow(width, height, d.opts.Title, fullScreenMonitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "could not create window")
	}
	d.window = win

	if fullScreenMonitor == nil {
		win.SetPos((desktopW-width)>>1, (desktopH-height)>>1)
	}

	d.Resize(width, height)
	win.SetSizeCallback(d.onResized)
	win.MakeContextCurrent()

	if err = gles2.InitWithProcAddrFunc(glfw.GetProcAddress); err != nil {
		d.destroy()
		return errors.Wrap(err, "could not load GLES entry points")
	}

	d.info = display.Info{
		Backend:  backendName,
		Vendor:   gles2.GoStr(gles2.GetString(gles2.VENDOR)),
		Renderer: gles2.GoStr(gles2.GetString(gles2.RENDERER)),
		Version:  gles2.GoStr(gles2.GetString(gles2.VERSION)),
	}

	version, err := display.ParseGLESVersion(d.info.Version)
	if err != nil {
		d.destroy()
		return err
	}
	d.SetGLESVersion(version)

	logger.Noticef("OpenGL information\n%s", d.info)
	return nil
}

func (d *glfwDisplay) onResized(_ *glfw.Window, width, height int) {
	d.Resize(width, height)
}

func (d *glfwDisplay) SwapBuffer() {
	if d.window == nil {
		return
	}
	d.window.SwapBuffers()
	glfw.PollEvents()
}

func (d *glfwDisplay) ProcessInput() bool {
	if d.window == nil {
		return true
	}

	glfw.PollEvents()
	if d.Interrupted() || d.window.GetKey(glfw.KeyEscape) == glfw.Press || d.window.ShouldClose() {
		d.window.SetShouldClose(true)
		return false
	}
	return true
}

func (d *glfwDisplay) SetTitle(title string) {
	if d.window != nil {
		d.window.SetTitle(title)
	}
}

func (d *glfwDisplay) Clock() timer.Source {
	return timer.Func(glfw.GetTime)
}

func (d *glfwDisplay) Info() display.Info {
	return d.info
}

func (d *glfwDisplay) Close() {
	if !d.BeginClose() {
		return
	}
	d.destroy()
}

func (d *glfwDisplay) destroy() {
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
	}
	glfw.Terminate()
}
