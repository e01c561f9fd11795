package text

// FaceCache loads a face on first use and hands the same instance to every
// later caller. Failed loads are not cached; each call retries and reports
// its own error.
type FaceCache struct {
	path string
	size float64
	face *Face
}

// NewFaceCache creates a cache for the font at path (empty for the built-in
// face) rendered at size points.
func NewFaceCache(path string, size float64) *FaceCache {
	return &FaceCache{path: path, size: size}
}

// Face returns the cached face, loading it if needed.
func (c *FaceCache) Face() (*Face, error) {
	if c.face != nil {
		return c.face, nil
	}

	face, err := LoadFaceFrom(c.path, c.size)
	if err != nil {
		return nil, err
	}
	c.face = face
	return face, nil
}

// Close releases the cached face, if any.
func (c *FaceCache) Close() error {
	if c.face == nil {
		return nil
	}
	err := c.face.Close()
	c.face = nil
	return err
}
