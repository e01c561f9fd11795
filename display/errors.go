package display

import "errors"

var (
	ErrCreateFailed       = errors.New("display: a previous create attempt failed")
	ErrNotCreated         = errors.New("display: surface has not been created")
	ErrUnsupportedVersion = errors.New("display: unsupported GLES version")
	ErrEmptySymbol        = errors.New("display: empty symbol name")
	ErrSymbolNotFound     = errors.New("display: symbol not found")
)
