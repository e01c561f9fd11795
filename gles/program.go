// Package gles contains thin helpers around the GLES 2 API shared by the
// overlay and the bundled scenes. All functions must be called from the
// thread that owns the current context.
package gles

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/pkg/errors"
)

// Program is a linked shader program with a uniform location cache.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a vertex/fragment shader pair.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, errors.Wrap(err, "vertex shader")
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return nil, errors.Wrap(err, "fragment shader")
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(id, logLen, nil, buf) })
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", ErrLinkFailed, log)
	}

	return &Program{
		id:       id,
		uniforms: make(map[string]int32),
	}, nil
}

func compileShader(shaderType uint32, src string) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrCompileFailed, log)
	}
	return shader, nil
}

func infoLog(logLen int32, fetch func(*uint8)) string {
	if logLen <= 0 {
		return "no info log"
	}
	buf := make([]uint8, logLen+1)
	fetch(&buf[0])
	return cleanLog(string(buf))
}

// cleanLog strips the NUL terminator and folds a multi-line driver log into a
// single line.
func cleanLog(log string) string {
	if idx := strings.IndexByte(log, 0); idx != -1 {
		log = log[:idx]
	}
	lines := strings.FieldsFunc(log, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	out := strings.Join(lines, "; ")
	if out == "" {
		return "no info log"
	}
	return out
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the location of the named uniform or -1.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Attrib returns the location of the named vertex attribute.
func (p *Program) Attrib(name string) (uint32, error) {
	loc := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, errors.Wrap(ErrNoAttribute, name)
	}
	return uint32(loc), nil
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
