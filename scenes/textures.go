package scenes

import (
	"math"

	"github.com/achilleasa/glperf/asset/texture"
	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/scene"
	"github.com/achilleasa/glperf/types"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

// Camera travel along the tunnel axis in model units.
const (
	tunnelStart = 90
	tunnelEnd   = -80
	tunnelSpeed = 5
	tunnelScale = 84
	tunnelDepth = 20
)

// Texture repeats along the tunnel.
const tunnelRepeat = 20

var tunnelTextureDir = "media/textures/texture"

const texturesVertexShader = `
attribute vec3 aPos;
attribute vec2 aUV;
uniform mat4 uMVP;
varying vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const texturesFragmentShader = `
precision mediump float;
uniform sampler2D uTex;
varying vec2 vUV;

void main() {
	gl_FragColor = texture2D(uTex, vUV);
}
`

// A tunnel wall drawn as a 4 vertex fan of (x, y, z, u, v) vertices.
type tunnelWall struct {
	image string
	data  []float32
}

// tunnelWalls returns the ceiling, side walls and floor of a 2x2 tunnel
// running from z = -tunnelDepth to z = tunnelDepth.
func tunnelWalls() []tunnelWall {
	const d, r = tunnelDepth, tunnelRepeat
	return []tunnelWall{
		{"ceiling.png", []float32{
			-1, 1, d, 0, 0,
			1, 1, d, 0, 1,
			1, 1, -d, r, 1,
			-1, 1, -d, r, 0,
		}},
		{"brick.png", []float32{
			-1, -1, d, 0, 0,
			-1, -1, -d, r, 0,
			-1, 1, -d, r, 1,
			-1, 1, d, 0, 1,
		}},
		{"brick.png", []float32{
			1, -1, d, 0, 0,
			1, -1, -d, r, 0,
			1, 1, -d, r, 1,
			1, 1, d, 0, 1,
		}},
		{"floor.png", []float32{
			-1, -1, d, 0, 0,
			1, -1, d, 0, 1,
			1, -1, -d, r, 1,
			-1, -1, -d, r, 0,
		}},
	}
}

func init() {
	scene.Register("textures", func() scene.Scene { return &texturesScene{} })
}

// texturesScene flies the camera through a textured tunnel.
type texturesScene struct {
	scene.Base

	program *gles.Program
	attrs   []uint32
	walls   []*gles.Mesh

	// Texture per wall; walls sharing an image share the texture.
	wallTextures []*gles.Texture
	textures     map[string]*gles.Texture

	camera float32
	proj   types.Mat4
}

func (s *texturesScene) Name() string { return "textures" }

func (s *texturesScene) Startup(ctx *scene.Context) error {
	program, attrs, err := newMeshProgram(ctx, texturesVertexShader, texturesFragmentShader, "aPos", "aUV")
	if err != nil {
		return err
	}
	s.program, s.attrs = program, attrs
	s.textures = make(map[string]*gles.Texture)

	for _, wall := range tunnelWalls() {
		mesh, err := gles.NewMesh(wall.data, gl.TRIANGLE_FAN, 3, 2)
		if err != nil {
			s.Shutdown(ctx)
			return err
		}
		s.walls = append(s.walls, mesh)

		tex, ok := s.textures[wall.image]
		if !ok {
			img, err := loadWallTexture(tunnelTextureDir + "/" + wall.image)
			if err != nil {
				s.Shutdown(ctx)
				return err
			}
			tex = gles.NewTexture(img)
			s.textures[wall.image] = tex
		}
		s.wallTextures = append(s.wallTextures, tex)
	}

	s.camera = tunnelStart
	s.OnResized(ctx.Width(), ctx.Height())
	return nil
}

func loadWallTexture(path string) (*texture.Texture, error) {
	tex, err := texture.Load(path)
	if err != nil {
		logger.Infof("textures: %s; using a generated texture", err)
		tex = texture.FromImage(checkerImage(128, 16))
	}
	return tex.PowerOfTwo(maxTextureSize)
}

func (s *texturesScene) OnResized(width, height int) {
	if height == 0 {
		height = 1
	}
	s.proj = types.Perspective(50*math.Pi/180, float32(width)/float32(height), 0.1, 1000)
}

// advanceCamera moves the camera down the tunnel and wraps it back to the
// entrance once it passes the end.
func advanceCamera(pos float32, deltaTime float64) float32 {
	pos -= float32(deltaTime) * tunnelSpeed
	if pos < tunnelEnd {
		pos = tunnelStart
	}
	return pos
}

func (s *texturesScene) mvp() types.Mat4 {
	view := types.LookAt(types.XYZ(0, 0, s.camera), types.XYZ(0, 0, s.camera-1), types.XYZ(0, 1, 0))
	model := types.Scale4(types.XYZ(tunnelScale, tunnelScale, tunnelScale))
	return s.proj.Mul4(view).Mul4(model)
}

func (s *texturesScene) Render(ctx *scene.Context, _, deltaTime float64) {
	beginFrame(ctx)
	s.camera = advanceCamera(s.camera, deltaTime)
	mvp := s.mvp()

	s.program.Use()
	gl.UniformMatrix4fv(s.program.Uniform("uMVP"), 1, false, mvp.Ptr())
	gl.Uniform1i(s.program.Uniform("uTex"), 0)
	for i, wall := range s.walls {
		s.wallTextures[i].Bind(0)
		wall.Draw(s.attrs...)
	}
}

func (s *texturesScene) Shutdown(_ *scene.Context) {
	for _, wall := range s.walls {
		wall.Delete()
	}
	for _, tex := range s.textures {
		tex.Delete()
	}
	s.walls, s.wallTextures, s.textures = nil, nil, nil
	if s.program != nil {
		s.program.Delete()
		s.program = nil
	}
}
