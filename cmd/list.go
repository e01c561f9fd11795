package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/achilleasa/glperf/registry"
	"github.com/achilleasa/glperf/scene"
)

// listScenes prints every registered key in registration order without
// instantiating any scene.
func listScenes(w io.Writer, reg *registry.Registry[scene.Scene]) error {
	fmt.Fprintf(w, "available scenes (%d):\n", reg.Len())
	for key := range reg.Keys() {
		fmt.Fprintf(w, "  %s\n", key)
	}
	return nil
}

// anyRegistered returns true if names is empty or at least one name is a
// registered key.
func anyRegistered(reg *registry.Registry[scene.Scene], names []string) bool {
	if len(names) == 0 {
		return reg.Len() != 0
	}
	for key := range reg.Keys() {
		if slices.Contains(names, key) {
			return true
		}
	}
	return false
}
