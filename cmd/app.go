package cmd

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/display/backend"
	"github.com/achilleasa/glperf/text"
	"github.com/urfave/cli"
)

// NewApp returns the glperf command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "glperf"
	app.Usage = "run GLES benchmark scenes and report a weighted score per category"
	app.Version = "0.1.0"
	app.HideVersion = true
	app.Description = `
Every registered scene renders for a fixed amount of time; its average frame
rate is multiplied by the scene weight and folded into the score of the scene
category. Press Escape or close the window to abort the run.

Display backend: ` + backend.Name
	app.Flags = []cli.Flag{
		cli.StringSliceFlag{
			Name:  "benchmark, b",
			Value: &cli.StringSlice{},
			Usage: "run only the named scene (can be repeated)",
		},
		cli.BoolFlag{
			Name:  "list-scenes, l",
			Usage: "list the available scenes and exit",
		},
		cli.BoolFlag{
			Name:  "fullscreen, f",
			Usage: "run in full-screen mode",
		},
		cli.BoolFlag{
			Name:  "run-forever, r",
			Usage: "keep running the selected scenes until aborted",
		},
		cli.StringFlag{
			Name:   "weights, w",
			Value:  "media/weight.txt",
			EnvVar: "GLPERF_WEIGHTS",
			Usage:  "path or http(s) URL of the scene weight table",
		},
		cli.StringFlag{
			Name:  "font",
			Usage: "TTF font used for the on-screen counter (default: built-in Go Mono)",
		},
		cli.Float64Flag{
			Name:  "font-size",
			Value: text.DefaultSize,
			Usage: "font size in points",
		},
		cli.IntFlag{
			Name:  "width",
			Value: display.DefaultWidth,
			Usage: "surface width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: display.DefaultHeight,
			Usage: "surface height",
		},
		cli.StringFlag{
			Name:   "egl-lib",
			EnvVar: "GLPERF_EGL_LIB",
			Usage:  "EGL driver library loaded by headless builds",
		},
		cli.StringFlag{
			Name:   "gles-lib",
			EnvVar: "GLPERF_GLES_LIB",
			Usage:  "GLESv2 driver library loaded by headless builds",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = Run
	return app
}
