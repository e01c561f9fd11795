package gles

import (
	"image"

	"github.com/achilleasa/glperf/asset/texture"
	gl "github.com/go-gl/gl/v3.1/gles2"
)

// Texture is a 2D texture object.
type Texture struct {
	id     uint32
	width  int
	height int
}

func newTexture(filter int32, wrap int32) *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	return t
}

// NewTexture uploads tex as a repeating, linearly filtered texture.
func NewTexture(tex *texture.Texture) *Texture {
	t := newTexture(gl.LINEAR, gl.REPEAT)
	t.width, t.height = int(tex.Width), int(tex.Height)

	format := uint32(gl.RGBA)
	if tex.Format == texture.Luminance8 {
		format = gl.LUMINANCE
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(t.width), int32(t.height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(tex.Data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// NewAlphaTexture creates an empty single channel texture for text masks.
func NewAlphaTexture() *Texture {
	t := newTexture(gl.NEAREST, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// SetAlpha replaces the texture contents with mask, reallocating storage
// when the dimensions change.
func (t *Texture) SetAlpha(mask *image.Alpha) {
	width, height := mask.Rect.Dx(), mask.Rect.Dy()
	pix := packedPix(mask.Pix, mask.Stride, width, height)

	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if width != t.width || height != t.height {
		t.width, t.height = width, height
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.ALPHA, int32(width), int32(height), 0, gl.ALPHA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.ALPHA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// packedPix returns rows of rowLen bytes without stride padding.
func packedPix(pix []uint8, stride, rowLen, rows int) []uint8 {
	if stride == rowLen {
		return pix[:rowLen*rows]
	}
	out := make([]uint8, 0, rowLen*rows)
	for y := 0; y < rows; y++ {
		out = append(out, pix[y*stride:y*stride+rowLen]...)
	}
	return out
}

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// Bind the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
