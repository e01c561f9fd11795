package scenes

import (
	"math"

	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/scene"
	"github.com/achilleasa/glperf/types"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const (
	depthCubeScale    = 42
	depthOrbitRadius  = 120
	depthOrbitHeight  = 45
	depthGlassRadius  = 0.5
	depthGlassSegment = 1200
)

const depthCubeVertexShader = `
attribute vec3 aPos;
attribute vec3 aColor;
uniform mat4 uMVP;
varying vec3 vColor;

void main() {
	vColor = aColor;
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const depthCubeFragmentShader = `
precision mediump float;
varying vec3 vColor;

void main() {
	gl_FragColor = vec4(vColor, 1.0);
}
`

const depthGlassVertexShader = `
attribute vec2 aPos;
uniform mat4 uProj;

void main() {
	gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
`

// The glass refracts the offscreen copy of the cube.
const depthGlassFragmentShader = `
precision mediump float;
uniform sampler2D uScene;
uniform vec2 uViewport;
uniform float uMaterial;

void main() {
	vec2 uv = gl_FragCoord.xy / uViewport;
	vec2 offset = (uv - 0.5) * uMaterial;
	vec3 c = texture2D(uScene, uv - offset).rgb;
	gl_FragColor = vec4(mix(c, vec3(0.8, 0.9, 1.0), 0.3), 0.6);
}
`

// Face colors in front, left, top, right, back, bottom order.
var cubeFaceColors = [6]types.Vec3{
	{1, 0, 0},
	{0, 0, 1},
	{1, 1, 1},
	{1, 1, 0},
	{0, 1, 1},
	{1, 0, 1},
}

// cubeVertices returns 36 (x, y, z, r, g, b) vertices of a unit cube centered
// at the origin. Faces wind counter-clockwise when seen from outside.
func cubeVertices() []float32 {
	type face struct {
		normal, u, v types.Vec3
	}
	faces := [6]face{
		{types.XYZ(0, 0, -1), types.XYZ(-1, 0, 0), types.XYZ(0, 1, 0)},
		{types.XYZ(-1, 0, 0), types.XYZ(0, 0, 1), types.XYZ(0, 1, 0)},
		{types.XYZ(0, 1, 0), types.XYZ(1, 0, 0), types.XYZ(0, 0, -1)},
		{types.XYZ(1, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0)},
		{types.XYZ(0, 0, 1), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)},
		{types.XYZ(0, -1, 0), types.XYZ(1, 0, 0), types.XYZ(0, 0, 1)},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	out := make([]float32, 0, 36*6)
	for i, f := range faces {
		color := cubeFaceColors[i]
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(0.5)
			out = append(out, p[0], p[1], p[2], color[0], color[1], color[2])
		}
	}
	return out
}

// circleVertices returns a triangle fan approximating a circle in the xy
// plane: the center followed by segments+1 rim points closing the loop.
func circleVertices(segments int, radius float32) []float32 {
	out := make([]float32, 0, 2*(segments+2))
	out = append(out, 0, 0)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i <= segments; i++ {
		sin, cos := math.Sincos(step * float64(i%segments))
		out = append(out, radius*float32(cos), radius*float32(sin))
	}
	return out
}

func init() {
	scene.Register("depth", func() scene.Scene { return &depthScene{} })
}

// depthScene renders a depth tested cube twice, once offscreen and once to
// the window, and blends a glass disc sampling the offscreen copy on top.
type depthScene struct {
	scene.Base

	cubeProgram  *gles.Program
	cubeAttrs    []uint32
	cube         *gles.Mesh
	glassProgram *gles.Program
	glassAttrs   []uint32
	glass        *gles.Mesh
	target       *gles.Framebuffer

	proj  types.Mat4
	ortho types.Mat4
}

func (s *depthScene) Name() string { return "depth" }

func (s *depthScene) Startup(ctx *scene.Context) error {
	var err error
	s.cubeProgram, s.cubeAttrs, err = newMeshProgram(ctx, depthCubeVertexShader, depthCubeFragmentShader, "aPos", "aColor")
	if err != nil {
		return err
	}

	if err = s.allocate(ctx); err != nil {
		s.Shutdown(ctx)
		return err
	}
	s.OnResized(ctx.Width(), ctx.Height())
	return nil
}

func (s *depthScene) allocate(ctx *scene.Context) error {
	var err error
	if s.glassProgram, s.glassAttrs, err = newMeshProgram(ctx, depthGlassVertexShader, depthGlassFragmentShader, "aPos"); err != nil {
		return err
	}
	if s.cube, err = gles.NewMesh(cubeVertices(), gl.TRIANGLES, 3, 3); err != nil {
		return err
	}
	if s.glass, err = gles.NewMesh(circleVertices(depthGlassSegment, depthGlassRadius), gl.TRIANGLE_FAN, 2); err != nil {
		return err
	}
	s.target, err = gles.NewFramebuffer(ctx.Width(), ctx.Height())
	return err
}

func (s *depthScene) OnResized(width, height int) {
	if height == 0 {
		height = 1
	}
	ratio := float32(width) / float32(height)
	const k = 1.2
	s.proj = types.Perspective(48*math.Pi/180, ratio, 0.1, 1000)
	s.ortho = types.Ortho(-ratio*k, ratio*k, -k, k, -1, 1)
}

// orbitEye returns the camera position circling the cube at currentTime.
func orbitEye(currentTime float64) types.Vec3 {
	sin, cos := math.Sincos(currentTime * 4 * 0.35)
	return types.XYZ(float32(cos)*depthOrbitRadius, depthOrbitHeight, float32(sin)*depthOrbitRadius)
}

func (s *depthScene) Render(ctx *scene.Context, currentTime, _ float64) {
	view := types.LookAt(orbitEye(currentTime), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	model := types.Scale4(types.XYZ(depthCubeScale, depthCubeScale, depthCubeScale))
	mvp := s.proj.Mul4(view).Mul4(model)

	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.6, 0.7, 0.8, 1)

	s.cubeProgram.Use()
	gl.UniformMatrix4fv(s.cubeProgram.Uniform("uMVP"), 1, false, mvp.Ptr())

	s.target.Bind()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.cube.Draw(s.cubeAttrs...)
	s.target.Unbind()

	gl.Viewport(0, 0, int32(ctx.Width()), int32(ctx.Height()))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.cube.Draw(s.cubeAttrs...)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s.glassProgram.Use()
	gl.UniformMatrix4fv(s.glassProgram.Uniform("uProj"), 1, false, s.ortho.Ptr())
	gl.Uniform2f(s.glassProgram.Uniform("uViewport"), float32(ctx.Width()), float32(ctx.Height()))
	gl.Uniform1f(s.glassProgram.Uniform("uMaterial"), 0.1)
	gl.Uniform1i(s.glassProgram.Uniform("uScene"), 1)
	s.target.Texture().Bind(1)
	s.glass.Draw(s.glassAttrs...)

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (s *depthScene) Shutdown(_ *scene.Context) {
	if s.target != nil {
		s.target.Delete()
		s.target = nil
	}
	for _, mesh := range []*gles.Mesh{s.cube, s.glass} {
		if mesh != nil {
			mesh.Delete()
		}
	}
	s.cube, s.glass = nil, nil
	for _, program := range []*gles.Program{s.cubeProgram, s.glassProgram} {
		if program != nil {
			program.Delete()
		}
	}
	s.cubeProgram, s.glassProgram = nil, nil
}
