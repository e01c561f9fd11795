package headless

import (
	"testing"

	"github.com/achilleasa/glperf/display"
	"github.com/pkg/errors"
)

func TestContextVersion(t *testing.T) {
	specs := []struct {
		version string
		exp     int
		expErr  bool
	}{
		{"OpenGL ES 3.2 Mesa 22.1.2", 320, false},
		{"OpenGL ES 2.0 build 1.3@2876724", 200, false},
		{"OpenGL ES-CM 1.1", 0, true},
		{"OpenGL ES 1.1", 0, true},
		{"", 0, true},
	}

	for specIndex, spec := range specs {
		var queried uint32
		getString := func(name uint32) string {
			queried = name
			return spec.version
		}

		version, err := contextVersion(getString)
		if queried != glVersion {
			t.Fatalf("[spec %d] expected glGetString(0x%x); got 0x%x", specIndex, glVersion, queried)
		}
		if spec.expErr {
			if !errors.Is(err, display.ErrUnsupportedVersion) {
				t.Fatalf("[spec %d] expected ErrUnsupportedVersion; got %v", specIndex, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", specIndex, err)
		}
		if version != spec.exp {
			t.Fatalf("[spec %d] expected version %d; got %d", specIndex, spec.exp, version)
		}
	}
}

func TestBindGetStringUnresolved(t *testing.T) {
	empty := func(string) uintptr { return 0 }
	resolver := display.NewResolver(empty, empty)

	if _, err := bindGetString(resolver); !errors.Is(err, display.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound; got %v", err)
	}
	if missing := resolver.Missing(); len(missing) != 1 || missing[0] != "glGetString" {
		t.Fatalf("expected glGetString to be reported missing; got %v", missing)
	}
}
