// Package text rasterizes short status strings into alpha masks that can be
// uploaded as GL textures.
package text

import (
	"image"

	"github.com/achilleasa/glperf/asset"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the font size in points used when none is specified.
const DefaultSize = 14.0

// Face is a sized font face.
type Face struct {
	face    font.Face
	ascent  int
	descent int
}

// LoadFace parses TTF/OTF data and creates a face of the given size.
func LoadFace(data []byte, size float64) (*Face, error) {
	if size <= 0 {
		size = DefaultSize
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "text: could not parse font")
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "text: could not create font face")
	}

	metrics := face.Metrics()
	return &Face{
		face:    face,
		ascent:  metrics.Ascent.Ceil(),
		descent: metrics.Descent.Ceil(),
	}, nil
}

// DefaultFace returns the built-in Go Mono face.
func DefaultFace(size float64) (*Face, error) {
	return LoadFace(gomono.TTF, size)
}

// LoadFaceFrom loads a font from a local path or http/https URL. An empty
// path selects the built-in face.
func LoadFaceFrom(path string, size float64) (*Face, error) {
	if path == "" {
		return DefaultFace(size)
	}

	data, err := asset.ReadAll(path)
	if err != nil {
		return nil, errors.Wrapf(err, "text: could not load font %s", path)
	}
	return LoadFace(data, size)
}

// LineHeight returns the height in pixels of a rasterized line.
func (f *Face) LineHeight() int {
	return f.ascent + f.descent
}

// Measure returns the pixel dimensions of the mask Rasterize would produce.
func (f *Face) Measure(s string) (width, height int) {
	return font.MeasureString(f.face, s).Ceil(), f.LineHeight()
}

// Rasterize renders s into a tightly sized alpha mask with the baseline
// placed at the face ascent. Empty strings yield a 1x1 transparent mask.
func (f *Face) Rasterize(s string) *image.Alpha {
	width, height := f.Measure(s)
	if width == 0 || height == 0 {
		return image.NewAlpha(image.Rect(0, 0, 1, 1))
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, f.ascent),
	}
	drawer.DrawString(s)
	return mask
}

// Close releases the face.
func (f *Face) Close() error {
	return f.face.Close()
}
