package gles

import (
	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/pkg/errors"
)

// Framebuffer is an offscreen render target with an RGBA color texture and a
// 16-bit depth renderbuffer.
type Framebuffer struct {
	fbo   uint32
	depth uint32
	color *Texture
}

// NewFramebuffer allocates a width x height render target.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	f := &Framebuffer{color: newTexture(gl.LINEAR, gl.CLAMP_TO_EDGE)}
	f.color.width, f.color.height = width, height
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &f.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.color.id, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, errors.Wrapf(ErrIncomplete, "status 0x%x for %dx%d target", status, width, height)
	}
	return f, nil
}

// Bind makes the framebuffer the current render target.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.color.width), int32(f.color.height))
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Texture returns the color attachment.
func (f *Framebuffer) Texture() *Texture {
	return f.color
}

// Delete releases the framebuffer and its attachments.
func (f *Framebuffer) Delete() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
	f.color.Delete()
}
