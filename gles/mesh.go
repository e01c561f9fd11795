package gles

import (
	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/pkg/errors"
)

type attribLayout struct {
	size   int32
	offset int
}

// Mesh is a static vertex buffer with interleaved float attributes.
type Mesh struct {
	vbo    uint32
	mode   uint32
	count  int32
	stride int32
	layout []attribLayout
}

// meshLayout returns the per attribute offsets and the vertex stride in bytes
// for the given component counts.
func meshLayout(components []int) ([]attribLayout, int32) {
	layout := make([]attribLayout, len(components))
	offset := 0
	for i, c := range components {
		layout[i] = attribLayout{size: int32(c), offset: offset}
		offset += c * floatSize
	}
	return layout, int32(offset)
}

// vertexCount returns the number of vertices in data.
func vertexCount(data []float32, stride int32) (int32, error) {
	perVertex := int(stride) / floatSize
	if perVertex == 0 || len(data) == 0 || len(data)%perVertex != 0 {
		return 0, errors.Wrapf(ErrVertexData, "%d floats with %d per vertex", len(data), perVertex)
	}
	return int32(len(data) / perVertex), nil
}

// NewMesh uploads data drawn with the given primitive mode. Each entry in
// components is the number of floats of one interleaved attribute.
func NewMesh(data []float32, mode uint32, components ...int) (*Mesh, error) {
	layout, stride := meshLayout(components)
	count, err := vertexCount(data, stride)
	if err != nil {
		return nil, err
	}

	m := &Mesh{mode: mode, count: count, stride: stride, layout: layout}
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// Draw the mesh feeding its attributes, in layout order, to attrs.
func (m *Mesh) Draw(attrs ...uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	for i, attr := range attrs {
		l := m.layout[i]
		gl.EnableVertexAttribArray(attr)
		gl.VertexAttribPointerWithOffset(attr, l.size, gl.FLOAT, false, m.stride, uintptr(l.offset))
	}

	gl.DrawArrays(m.mode, 0, m.count)

	for _, attr := range attrs {
		gl.DisableVertexAttribArray(attr)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete releases the vertex buffer.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}
