package scenes

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/scene"
)

type oldSurface struct{}

func (oldSurface) SetRenderNode(node display.RenderNode) { node.OnResized(640, 480) }
func (oldSurface) SetTitle(_ string)                     {}
func (oldSurface) SwapBuffer()                           {}
func (oldSurface) ProcessInput() bool                    { return true }
func (oldSurface) GLESVersion() int                      { return 100 }

type fixedClock struct{}

func (fixedClock) Now() float64 { return 0 }

type nopOverlay struct{ closed bool }

func (o *nopOverlay) Resize(_, _ int) {}
func (o *nopOverlay) Render(_ string) {}
func (o *nopOverlay) Close()          { o.closed = true }

func TestRegisteredScenes(t *testing.T) {
	type spec struct {
		key      string
		category scene.Category
	}

	specs := []spec{
		{"fill", scene.FillRate},
		{"pixel", scene.FillRate},
		{"fire", scene.Generic},
		{"shader", scene.Generic},
		{"textures", scene.Generic},
		{"depth", scene.Generic},
	}

	for specIndex, s := range specs {
		sc, ok := scene.Registry().Create(s.key)
		if !ok {
			t.Fatalf("[spec %d] expected scene %q to be registered", specIndex, s.key)
		}
		if sc.Name() != s.key {
			t.Fatalf("[spec %d] expected name %q; got %q", specIndex, s.key, sc.Name())
		}
		if sc.Category() != s.category {
			t.Fatalf("[spec %d] expected category %s; got %s", specIndex, s.category, sc.Category())
		}
	}
}

func TestScenesRequireGLES2(t *testing.T) {
	for key := range scene.Registry().Keys() {
		sc, _ := scene.Registry().Create(key)
		overlay := &nopOverlay{}
		env := &scene.Env{
			Surface:    oldSurface{},
			Clock:      fixedClock{},
			NewOverlay: func() (scene.Overlay, error) { return overlay, nil },
		}

		if res := scene.NewNode(key, sc).Run(env); res != scene.Failed {
			t.Fatalf("expected %s to fail on a GLES 1.x display; got %s", key, res)
		}
		if !overlay.closed {
			t.Fatalf("expected overlay to be closed after %s failed to start", key)
		}
	}
}

func TestCheckerImage(t *testing.T) {
	img := checkerImage(64, 16)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("expected 64x64 image; got %v", img.Bounds())
	}

	if img.RGBAAt(0, 0) == img.RGBAAt(16, 0) {
		t.Fatal("expected adjacent cells to differ")
	}
	if img.RGBAAt(0, 0) != img.RGBAAt(16, 16) {
		t.Fatal("expected diagonal cells to match")
	}
}

func TestShaderProjectionZeroHeight(t *testing.T) {
	m := shaderProjection(800, 0)
	for _, v := range m {
		if v != v {
			t.Fatal("expected finite projection for zero height")
		}
	}
}

func TestLoadPixelTextureFallback(t *testing.T) {
	tex, err := loadPixelTexture(filepath.Join(t.TempDir(), "missing.jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 256 || tex.Height != 256 {
		t.Fatalf("expected generated 256x256 texture; got %dx%d", tex.Width, tex.Height)
	}
}

func TestCubeVertices(t *testing.T) {
	data := cubeVertices()
	if len(data) != 36*6 {
		t.Fatalf("expected 36 vertices with 6 floats each; got %d floats", len(data))
	}

	for tri := 0; tri < 12; tri++ {
		var p [3][3]float32
		for i := range p {
			copy(p[i][:], data[(tri*3+i)*6:])
		}

		// Counter-clockwise winding makes the face normal point away from
		// the cube center.
		a := [3]float32{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		b := [3]float32{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
		center := [3]float32{
			(p[0][0] + p[1][0] + p[2][0]) / 3,
			(p[0][1] + p[1][1] + p[2][1]) / 3,
			(p[0][2] + p[1][2] + p[2][2]) / 3,
		}
		if dot := n[0]*center[0] + n[1]*center[1] + n[2]*center[2]; dot <= 0 {
			t.Fatalf("expected triangle %d to face outwards; normal %v at %v", tri, n, center)
		}

		for i := range p {
			for _, c := range p[i] {
				if c != 0.5 && c != -0.5 {
					t.Fatalf("expected triangle %d to lie on the unit cube; got %v", tri, p[i])
				}
			}
		}
	}
}

func TestCircleVertices(t *testing.T) {
	data := circleVertices(8, 2)
	if len(data) != 2*(8+2) {
		t.Fatalf("expected %d floats; got %d", 2*(8+2), len(data))
	}
	if data[0] != 0 || data[1] != 0 {
		t.Fatalf("expected fan to start at the center; got (%f, %f)", data[0], data[1])
	}

	for i := 2; i < len(data); i += 2 {
		if r := math.Hypot(float64(data[i]), float64(data[i+1])); math.Abs(r-2) > 1e-5 {
			t.Fatalf("expected rim vertex %d at radius 2; got %f", i/2, r)
		}
	}
	if data[2] != data[len(data)-2] || data[3] != data[len(data)-1] {
		t.Fatal("expected the last rim vertex to close the fan")
	}
}

func TestAdvanceCamera(t *testing.T) {
	type spec struct {
		pos   float32
		delta float64
		exp   float32
	}

	specs := []spec{
		{tunnelStart, 1, tunnelStart - tunnelSpeed},
		{0, 0, 0},
		{tunnelEnd + 1, 1, tunnelStart},
		{tunnelEnd, 0, tunnelEnd},
	}

	for specIndex, s := range specs {
		if got := advanceCamera(s.pos, s.delta); got != s.exp {
			t.Fatalf("[spec %d] expected camera at %f; got %f", specIndex, s.exp, got)
		}
	}
}

func TestTunnelWalls(t *testing.T) {
	walls := tunnelWalls()
	if len(walls) != 4 {
		t.Fatalf("expected 4 walls; got %d", len(walls))
	}
	for i, wall := range walls {
		if len(wall.data) != 4*5 {
			t.Fatalf("expected wall %d to have 4 vertices; got %d floats", i, len(wall.data))
		}
	}
	if walls[1].image != walls[2].image {
		t.Fatal("expected side walls to share a texture")
	}
}

func TestLoadWallTextureFallback(t *testing.T) {
	tex, err := loadWallTexture(filepath.Join(t.TempDir(), "brick.png"))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 128 || tex.Height != 128 {
		t.Fatalf("expected generated 128x128 texture; got %dx%d", tex.Width, tex.Height)
	}
}

func TestOrbitEye(t *testing.T) {
	for _, now := range []float64{0, 1.5, 7} {
		eye := orbitEye(now)
		if eye[1] != depthOrbitHeight {
			t.Fatalf("expected camera height %d; got %f", depthOrbitHeight, eye[1])
		}
		if r := math.Hypot(float64(eye[0]), float64(eye[2])); math.Abs(r-depthOrbitRadius) > 1e-3 {
			t.Fatalf("expected orbit radius %d; got %f", depthOrbitRadius, r)
		}
	}
}
