package cmd

import (
	"github.com/achilleasa/glperf/log"
	"github.com/urfave/cli"
)

var logger = log.New("glperf")

func setupLogging(ctx *cli.Context) {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}
}
