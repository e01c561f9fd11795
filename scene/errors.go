package scene

import "errors"

var (
	ErrAlreadyRun         = errors.New("scene: node has already been run")
	ErrUnsupportedVersion = errors.New("scene: GLES version too low")
)
