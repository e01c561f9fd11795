package scenes

import (
	"math"

	"github.com/achilleasa/glperf/scene"
	"github.com/achilleasa/glperf/types"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const shaderVertexShader = `
attribute vec2 aPos;
attribute vec2 aUV;
uniform mat4 uMVP;
varying vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`

// Escape-time fractal; the iteration count is fixed so every fragment does
// the same amount of ALU work.
const shaderFragmentShader = `
precision highp float;
uniform float uTime;
varying vec2 vUV;

void main() {
	vec2 c = vec2(-0.745, 0.186) + 0.01 * vec2(cos(uTime * 0.3), sin(uTime * 0.3));
	vec2 z = (vUV - 0.5) * 3.0;
	float acc = 0.0;
	for (int i = 0; i < 64; i++) {
		z = vec2(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
		acc += exp(-dot(z, z));
	}
	float t = acc / 64.0;
	gl_FragColor = vec4(0.5 + 0.5 * cos(6.2831 * (t + vec3(0.0, 0.33, 0.67))), 1.0);
}
`

var (
	spinAxis = types.XYZ(0.3, 1, 0.2)
	tiltAxis = types.XYZ(1, 0, 0)
)

func init() {
	scene.Register("shader", func() scene.Scene { return &shaderScene{} })
}

// shaderScene draws a spinning quad textured by an ALU heavy fragment shader.
type shaderScene struct {
	scene.Base

	qp   *quadProgram
	proj types.Mat4
}

func (s *shaderScene) Name() string { return "shader" }

func (s *shaderScene) Startup(ctx *scene.Context) error {
	qp, err := newQuadProgram(ctx, shaderVertexShader, shaderFragmentShader, true)
	if err != nil {
		return err
	}
	s.qp = qp
	s.OnResized(ctx.Width(), ctx.Height())
	return nil
}

func (s *shaderScene) OnResized(width, height int) {
	s.proj = shaderProjection(width, height)
}

func shaderProjection(width, height int) types.Mat4 {
	if height == 0 {
		height = 1
	}
	return types.Perspective(math.Pi/3, float32(width)/float32(height), 0.1, 100)
}

func (s *shaderScene) Render(ctx *scene.Context, currentTime, _ float64) {
	beginFrame(ctx)

	spin := types.QuatFromAxisAngle(spinAxis, float32(currentTime*0.5))
	tilt := types.QuatFromAxisAngle(tiltAxis, float32(0.3*math.Sin(currentTime*0.2)))
	rot := tilt.Mul(spin)
	mvp := s.proj.Mul4(types.Translate4(types.XYZ(0, 0, -3))).Mul4(rot.Mat4())

	s.qp.program.Use()
	gl.UniformMatrix4fv(s.qp.program.Uniform("uMVP"), 1, false, mvp.Ptr())
	gl.Uniform1f(s.qp.program.Uniform("uTime"), float32(currentTime))
	s.qp.draw()
}

func (s *shaderScene) Shutdown(_ *scene.Context) {
	s.qp.delete()
}
