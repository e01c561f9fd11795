package main

import (
	"os"
	"runtime"

	"github.com/achilleasa/glperf/cmd"
	_ "github.com/achilleasa/glperf/scenes"
)

// GL contexts are bound to the thread that created them.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
