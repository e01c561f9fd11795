package scenes

import (
	"github.com/achilleasa/glperf/scene"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const fireFragmentShader = `
precision mediump float;
uniform float uTime;
uniform float uRatio;
varying vec2 vUV;

float hash(vec2 p) {
	return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453);
}

float noise(vec2 p) {
	vec2 i = floor(p);
	vec2 f = fract(p);
	vec2 u = f * f * (3.0 - 2.0 * f);
	return mix(mix(hash(i), hash(i + vec2(1.0, 0.0)), u.x),
		mix(hash(i + vec2(0.0, 1.0)), hash(i + vec2(1.0, 1.0)), u.x), u.y);
}

float fbm(vec2 p) {
	float v = 0.0;
	float a = 0.5;
	for (int i = 0; i < 5; i++) {
		v += a * noise(p);
		p *= 2.0;
		a *= 0.5;
	}
	return v;
}

void main() {
	vec2 p = vec2(vUV.x * uRatio, vUV.y);
	float n = fbm(p * 4.0 - vec2(0.0, uTime * 1.5));
	float heat = clamp(n * 1.6 - vUV.y, 0.0, 1.0);
	vec3 col = vec3(1.5 * heat, 1.5 * heat * heat, heat * heat * heat * heat);
	gl_FragColor = vec4(col, 1.0);
}
`

func init() {
	scene.Register("fire", func() scene.Scene { return &fireScene{} })
}

// fireScene renders an animated procedural fire effect.
type fireScene struct {
	scene.Base

	qp *quadProgram
}

func (s *fireScene) Name() string { return "fire" }

func (s *fireScene) Startup(ctx *scene.Context) error {
	qp, err := newQuadProgram(ctx, uvVertexShader, fireFragmentShader, true)
	if err != nil {
		return err
	}
	s.qp = qp
	return nil
}

func (s *fireScene) Render(ctx *scene.Context, currentTime, _ float64) {
	beginFrame(ctx)

	s.qp.program.Use()
	gl.Uniform1f(s.qp.program.Uniform("uTime"), float32(currentTime))
	gl.Uniform1f(s.qp.program.Uniform("uRatio"), ctx.Ratio())
	s.qp.draw()
}

func (s *fireScene) Shutdown(_ *scene.Context) {
	s.qp.delete()
}
