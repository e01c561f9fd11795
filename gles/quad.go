package gles

import (
	gl "github.com/go-gl/gl/v3.1/gles2"
)

const (
	floatSize    = 4
	quadStride   = 4 * floatSize
	quadVertices = 4
)

// Quad is a textured rectangle drawn as a 4 vertex triangle strip with
// interleaved (x, y, u, v) attributes.
type Quad struct {
	vbo uint32
}

// NewQuad uploads a rectangle spanning (x0, y0) to (x1, y1). Texture
// coordinates span (0, 0) at (x0, y0) to (1, 1) at (x1, y1).
func NewQuad(x0, y0, x1, y1 float32) *Quad {
	vertices := quadData(x0, y0, x1, y1)

	q := &Quad{}
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return q
}

// NewFullScreenQuad returns a quad covering clip space.
func NewFullScreenQuad() *Quad {
	return NewQuad(-1, -1, 1, 1)
}

func quadData(x0, y0, x1, y1 float32) []float32 {
	return []float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
	}
}

// Draw the quad feeding positions to posAttr and texture coordinates to
// uvAttr. Pass a negative uvAttr if the program does not use them.
func (q *Quad) Draw(posAttr uint32, uvAttr int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)

	gl.EnableVertexAttribArray(posAttr)
	gl.VertexAttribPointerWithOffset(posAttr, 2, gl.FLOAT, false, quadStride, 0)
	if uvAttr >= 0 {
		gl.EnableVertexAttribArray(uint32(uvAttr))
		gl.VertexAttribPointerWithOffset(uint32(uvAttr), 2, gl.FLOAT, false, quadStride, 2*floatSize)
	}

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, quadVertices)

	gl.DisableVertexAttribArray(posAttr)
	if uvAttr >= 0 {
		gl.DisableVertexAttribArray(uint32(uvAttr))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete releases the vertex buffer.
func (q *Quad) Delete() {
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
}
