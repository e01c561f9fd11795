// Package scenes contains the bundled benchmark scenes. Importing the package
// registers them with the scene registry.
package scenes

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/log"
	"github.com/achilleasa/glperf/scene"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

var logger = log.New("scenes")

// Full-screen quad passing texture coordinates through.
const uvVertexShader = `
attribute vec2 aPos;
attribute vec2 aUV;
varying vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

// quadProgram bundles a program with a quad and its attribute bindings.
type quadProgram struct {
	program *gles.Program
	quad    *gles.Quad
	posAttr uint32
	uvAttr  int32
}

// newQuadProgram gates on the minimum GLES version and builds the program.
// The returned value owns all GL resources it allocated; on error nothing is
// left allocated.
func newQuadProgram(ctx *scene.Context, vertexSrc, fragmentSrc string, withUV bool) (*quadProgram, error) {
	if err := ctx.RequireGLES(display.MinGLESVersion); err != nil {
		return nil, err
	}

	program, err := gles.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}

	posAttr, err := program.Attrib("aPos")
	if err != nil {
		program.Delete()
		return nil, err
	}

	uvAttr := int32(-1)
	if withUV {
		attr, err := program.Attrib("aUV")
		if err != nil {
			program.Delete()
			return nil, err
		}
		uvAttr = int32(attr)
	}

	return &quadProgram{
		program: program,
		quad:    gles.NewFullScreenQuad(),
		posAttr: posAttr,
		uvAttr:  uvAttr,
	}, nil
}

func (qp *quadProgram) draw() {
	qp.quad.Draw(qp.posAttr, qp.uvAttr)
}

func (qp *quadProgram) delete() {
	qp.quad.Delete()
	qp.program.Delete()
}

// newMeshProgram gates on the minimum GLES version, builds the program and
// looks up the named attributes.
func newMeshProgram(ctx *scene.Context, vertexSrc, fragmentSrc string, attribNames ...string) (*gles.Program, []uint32, error) {
	if err := ctx.RequireGLES(display.MinGLESVersion); err != nil {
		return nil, nil, err
	}

	program, err := gles.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, nil, err
	}

	attrs := make([]uint32, len(attribNames))
	for i, name := range attribNames {
		if attrs[i], err = program.Attrib(name); err != nil {
			program.Delete()
			return nil, nil, err
		}
	}
	return program, attrs, nil
}

// beginFrame sets the viewport and clears the color buffer.
func beginFrame(ctx *scene.Context) {
	gl.Viewport(0, 0, int32(ctx.Width()), int32(ctx.Height()))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
