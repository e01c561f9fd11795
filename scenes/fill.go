package scenes

import (
	"image"
	"image/color"
	"math"

	"github.com/achilleasa/glperf/asset/texture"
	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/scene"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const (
	fillLayers      = 8
	fillTextureSize = 256
	fillCheckerSize = 32
)

const fillVertexShader = `
attribute vec2 aPos;
attribute vec2 aUV;
uniform vec2 uOffset;
uniform float uScale;
varying vec2 vUV;

void main() {
	vUV = aUV * uScale + uOffset;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fillFragmentShader = `
precision mediump float;
uniform sampler2D uTex;
uniform float uAlpha;
varying vec2 vUV;

void main() {
	vec4 c = texture2D(uTex, vUV);
	gl_FragColor = vec4(c.rgb, c.a * uAlpha);
}
`

func init() {
	scene.Register("fill", func() scene.Scene { return &fillScene{} })
}

// fillScene stresses fragment throughput by blending several full-screen
// textured layers on top of each other.
type fillScene struct {
	scene.Base

	qp      *quadProgram
	texture *gles.Texture
}

func (s *fillScene) Name() string             { return "fill" }
func (s *fillScene) Category() scene.Category { return scene.FillRate }

func (s *fillScene) Startup(ctx *scene.Context) error {
	qp, err := newQuadProgram(ctx, fillVertexShader, fillFragmentShader, true)
	if err != nil {
		return err
	}
	s.qp = qp
	s.texture = gles.NewTexture(texture.FromImage(checkerImage(fillTextureSize, fillCheckerSize)))
	return nil
}

func (s *fillScene) Render(ctx *scene.Context, currentTime, _ float64) {
	beginFrame(ctx)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s.qp.program.Use()
	gl.Uniform1i(s.qp.program.Uniform("uTex"), 0)
	s.texture.Bind(0)

	for layer := 0; layer < fillLayers; layer++ {
		phase := currentTime*0.1 + float64(layer)/fillLayers
		sin, cos := math.Sincos(phase * 2 * math.Pi)
		gl.Uniform2f(s.qp.program.Uniform("uOffset"), float32(sin), float32(cos))
		gl.Uniform1f(s.qp.program.Uniform("uScale"), float32(1+layer))
		gl.Uniform1f(s.qp.program.Uniform("uAlpha"), 1.0/float32(layer+1))
		s.qp.draw()
	}

	gl.Disable(gl.BLEND)
}

func (s *fillScene) Shutdown(_ *scene.Context) {
	s.texture.Delete()
	s.qp.delete()
}

// checkerImage returns a size x size checkerboard with cells of cell pixels.
func checkerImage(size, cell int) *image.RGBA {
	light := color.RGBA{R: 0xe0, G: 0x80, B: 0x20, A: 0xff}
	dark := color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
