package cmd

import (
	"github.com/achilleasa/glperf/bench"
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/display/backend"
	"github.com/achilleasa/glperf/overlay"
	"github.com/achilleasa/glperf/scene"
	"github.com/achilleasa/glperf/text"
	"github.com/urfave/cli"
)

// Collaborators replaced by tests.
var (
	newDisplay     = backend.New
	sceneRegistry  = scene.Registry
	newTextOverlay = newGLOverlay
)

func newGLOverlay(face *text.Face) (scene.Overlay, error) {
	o, err := overlay.New(face)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Run the benchmark.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	reg := sceneRegistry()
	if ctx.Bool("list-scenes") {
		return listScenes(ctx.App.Writer, reg)
	}

	names := ctx.StringSlice("benchmark")
	if !anyRegistered(reg, names) {
		logger.Warningf("no matching scenes for %v; use --list-scenes to see the available scenes", names)
		return nil
	}

	weights, err := bench.LoadWeights(ctx.String("weights"))
	if err != nil {
		logger.Warningf("%s; using default weights", err)
		weights = nil
	}

	fonts := text.NewFaceCache(ctx.String("font"), ctx.Float64("font-size"))
	defer fonts.Close()

	disp := newDisplay(display.Options{
		Width:       ctx.Int("width"),
		Height:      ctx.Int("height"),
		FullScreen:  ctx.Bool("fullscreen"),
		EGLLibrary:  ctx.String("egl-lib"),
		GLESLibrary: ctx.String("gles-lib"),
	}.WithDefaults())

	if !disp.IsSupported() {
		return cli.NewExitError("display: this system does not support GLES 2.0 or later", 1)
	}
	if err = disp.Create(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer disp.Close()
	logger.Infof("using %s display backend", disp.Info().Backend)

	env := &scene.Env{
		Surface: disp,
		Clock:   disp.Clock(),
		NewOverlay: func() (scene.Overlay, error) {
			face, err := fonts.Face()
			if err != nil {
				return nil, err
			}
			return newTextOverlay(face)
		},
	}

	driver := bench.NewDriver(reg, weights, env, newTableReporter(ctx.App.Writer))
	out, _ := driver.Run(names, ctx.Bool("run-forever"))
	if out.Aborted {
		logger.Notice("benchmark aborted")
	}
	return nil
}
