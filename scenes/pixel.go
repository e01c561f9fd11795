package scenes

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/achilleasa/glperf/asset/texture"
	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/scene"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const maxTextureSize = 1024

// Loaded by the pixel scene; a generated noise texture is used if it cannot
// be read.
var pixelTexturePath = "media/textures/ground.jpeg"

const pixelFragmentShader = `
precision mediump float;
uniform sampler2D uTex;
uniform vec2 uTexel;
uniform float uTime;
varying vec2 vUV;

void main() {
	vec2 uv = vUV * 4.0 + vec2(uTime * 0.05, 0.0);
	vec4 sum = vec4(0.0);
	for (int y = -2; y <= 2; y++) {
		for (int x = -2; x <= 2; x++) {
			sum += texture2D(uTex, uv + vec2(float(x), float(y)) * uTexel);
		}
	}
	gl_FragColor = vec4(sum.rgb / 25.0, 1.0);
}
`

func init() {
	scene.Register("pixel", func() scene.Scene { return &pixelScene{} })
}

// pixelScene is bound by texture fetch throughput: every fragment averages a
// 5x5 neighborhood of a repeating texture.
type pixelScene struct {
	scene.Base

	qp      *quadProgram
	texture *gles.Texture
	texel   [2]float32
}

func (s *pixelScene) Name() string             { return "pixel" }
func (s *pixelScene) Category() scene.Category { return scene.FillRate }

func (s *pixelScene) Startup(ctx *scene.Context) error {
	qp, err := newQuadProgram(ctx, uvVertexShader, pixelFragmentShader, true)
	if err != nil {
		return err
	}

	tex, err := loadPixelTexture(pixelTexturePath)
	if err != nil {
		qp.delete()
		return err
	}

	s.qp = qp
	s.texture = gles.NewTexture(tex)
	s.texel = [2]float32{1 / float32(tex.Width), 1 / float32(tex.Height)}
	return nil
}

func loadPixelTexture(path string) (*texture.Texture, error) {
	tex, err := texture.Load(path)
	if err != nil {
		logger.Infof("pixel: %s; using a generated texture", err)
		tex = texture.FromImage(noiseImage(256, 1))
	}
	return tex.PowerOfTwo(maxTextureSize)
}

func (s *pixelScene) Render(ctx *scene.Context, currentTime, _ float64) {
	beginFrame(ctx)

	s.qp.program.Use()
	gl.Uniform1i(s.qp.program.Uniform("uTex"), 0)
	gl.Uniform2f(s.qp.program.Uniform("uTexel"), s.texel[0], s.texel[1])
	gl.Uniform1f(s.qp.program.Uniform("uTime"), float32(currentTime))
	s.texture.Bind(0)
	s.qp.draw()
}

func (s *pixelScene) Shutdown(_ *scene.Context) {
	s.texture.Delete()
	s.qp.delete()
}

// noiseImage returns a deterministic size x size RGB noise image.
func noiseImage(size int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(rng.Intn(256))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v / 2, B: v / 4, A: 0xff})
		}
	}
	return img
}
