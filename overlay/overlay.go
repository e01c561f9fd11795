// Package overlay draws the status text shown on top of a running scene.
package overlay

import (
	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/gles"
	"github.com/achilleasa/glperf/text"
	"github.com/achilleasa/glperf/types"
	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/pkg/errors"
)

// Distance in pixels between the text and the top-left corner.
const margin = 8

const vertexShader = `
attribute vec2 aPos;
attribute vec2 aUV;
uniform mat4 uProj;
uniform vec4 uRect;
varying vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = uProj * vec4(uRect.xy + aPos * uRect.zw, 0.0, 1.0);
}
`

const fragmentShader = `
precision mediump float;
uniform sampler2D uMask;
uniform vec4 uColor;
varying vec2 vUV;

void main() {
	gl_FragColor = vec4(uColor.rgb, uColor.a * texture2D(uMask, vUV).a);
}
`

// TextOverlay renders a single line of text using a glyph mask texture that
// is only rebuilt when the text changes.
type TextOverlay struct {
	face    *text.Face
	program *gles.Program
	quad    *gles.Quad
	mask    *gles.Texture

	posAttr uint32
	uvAttr  int32

	proj  types.Mat4
	color types.Vec4
	text  string
}

// New creates a text overlay using the given face. The face is owned by the
// caller and may be shared between overlays.
func New(face *text.Face) (*TextOverlay, error) {
	program, err := gles.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "overlay: could not build text shader")
	}

	posAttr, err := program.Attrib("aPos")
	if err != nil {
		program.Delete()
		return nil, err
	}
	uvAttr, err := program.Attrib("aUV")
	if err != nil {
		program.Delete()
		return nil, err
	}

	o := &TextOverlay{
		face:    face,
		program: program,
		quad:    gles.NewQuad(0, 0, 1, 1),
		mask:    gles.NewAlphaTexture(),
		posAttr: posAttr,
		uvAttr:  int32(uvAttr),
		color:   types.XYZW(1, 1, 0, 1),
	}
	o.Resize(display.DefaultWidth, display.DefaultHeight)
	return o, nil
}

// Resize updates the projection so that text is drawn in pixel units with
// the origin at the top-left corner.
func (o *TextOverlay) Resize(width, height int) {
	o.proj = pixelProjection(width, height)
}

func pixelProjection(width, height int) types.Mat4 {
	return types.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Render draws txt.
func (o *TextOverlay) Render(txt string) {
	if txt != o.text {
		o.text = txt
		o.mask.SetAlpha(o.face.Rasterize(txt))
	}
	w, h := o.mask.Size()

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.program.Use()
	gl.UniformMatrix4fv(o.program.Uniform("uProj"), 1, false, o.proj.Ptr())
	gl.Uniform4f(o.program.Uniform("uRect"), margin, margin, float32(w), float32(h))
	gl.Uniform4fv(o.program.Uniform("uColor"), 1, &o.color[0])
	gl.Uniform1i(o.program.Uniform("uMask"), 0)
	o.mask.Bind(0)

	o.quad.Draw(o.posAttr, o.uvAttr)

	gl.Disable(gl.BLEND)
}

// Close releases all GL resources.
func (o *TextOverlay) Close() {
	o.mask.Delete()
	o.quad.Delete()
	o.program.Delete()
}
