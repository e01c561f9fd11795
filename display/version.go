package display

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var glesVersionRegex = regexp.MustCompile(`(?i)opengl\s*es\s*(\d+)\.(\d+)`)

// ParseGLESVersion extracts the GLES version from a driver version string such
// as "OpenGL ES 3.2 Mesa 22.1.2" and returns it encoded as major*100 + minor*10.
// Strings that do not match or report a major version below 2 are rejected.
func ParseGLESVersion(version string) (int, error) {
	m := glesVersionRegex.FindStringSubmatch(version)
	if m == nil {
		return 0, errors.Wrapf(ErrUnsupportedVersion, "could not parse version string %q", version)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedVersion, "invalid major version in %q", version)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedVersion, "invalid minor version in %q", version)
	}

	encoded := major*100 + minor*10
	if encoded < MinGLESVersion {
		return 0, errors.Wrapf(ErrUnsupportedVersion, "version %d.%d is below 2.0", major, minor)
	}
	return encoded, nil
}
