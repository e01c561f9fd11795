package gles

import "errors"

var (
	ErrCompileFailed = errors.New("gles: shader compilation failed")
	ErrLinkFailed    = errors.New("gles: program link failed")
	ErrNoAttribute   = errors.New("gles: attribute not found")
	ErrVertexData    = errors.New("gles: vertex data does not match the attribute layout")
	ErrIncomplete    = errors.New("gles: framebuffer incomplete")
)
