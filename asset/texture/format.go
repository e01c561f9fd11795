package texture

// Format describes the pixel layout of texture data.
type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
)

// BytesPerPixel returns the size of a single pixel.
func (f Format) BytesPerPixel() int {
	if f == Luminance8 {
		return 1
	}
	return 4
}
