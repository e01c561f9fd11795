package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/achilleasa/glperf/asset"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// A texture image and its metadata. Data is tightly packed, top row first.
type Texture struct {
	Format Format

	Width  uint32
	Height uint32

	Data []byte
}

// Load a texture from a local path or http/https URL.
func Load(pathToTexture string) (*Texture, error) {
	res, err := asset.NewResource(pathToTexture)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return New(res)
}

// Create a new texture from a Resource.
func New(res *asset.Resource) (*Texture, error) {
	tex, err := Decode(res)
	if err != nil {
		return nil, errors.Wrapf(err, "texture: could not decode %s", res.Path())
	}
	return tex, nil
}

// Decode an image stream. Grayscale images are kept as single channel
// textures; everything else is converted to 8-bit RGBA.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// FromImage converts img into a texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := &Texture{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}

	switch src := img.(type) {
	case *image.Gray:
		tex.Format = Luminance8
		tex.Data = packRows(src.Pix, src.Stride, bounds.Dx(), bounds.Dy())
	default:
		rgba, ok := img.(*image.RGBA)
		if !ok || rgba.Rect.Min != (image.Point{}) {
			rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
			draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
		}
		tex.Format = Rgba8
		tex.Data = packRows(rgba.Pix, rgba.Stride, bounds.Dx()*4, bounds.Dy())
	}
	return tex
}

func packRows(pix []byte, stride, rowLen, rows int) []byte {
	out := make([]byte, rowLen*rows)
	for y := 0; y < rows; y++ {
		copy(out[y*rowLen:(y+1)*rowLen], pix[y*stride:])
	}
	return out
}

// Image returns the texture contents as an image.
func (t *Texture) Image() image.Image {
	rect := image.Rect(0, 0, int(t.Width), int(t.Height))
	if t.Format == Luminance8 {
		return &image.Gray{Pix: t.Data, Stride: int(t.Width), Rect: rect}
	}
	return &image.RGBA{Pix: t.Data, Stride: int(t.Width) * 4, Rect: rect}
}

// PowerOfTwo returns a copy of the texture resampled so that both
// dimensions are powers of two no larger than maxSize. GLES 2 only supports
// repeat wrapping and mipmaps for such textures. Textures that already
// satisfy the constraint are returned as is.
func (t *Texture) PowerOfTwo(maxSize uint32) (*Texture, error) {
	if t.Width == 0 || t.Height == 0 {
		return nil, fmt.Errorf("texture: cannot resample empty %dx%d texture", t.Width, t.Height)
	}

	w, h := min(nextPowerOfTwo(t.Width), maxSize), min(nextPowerOfTwo(t.Height), maxSize)
	if w == t.Width && h == t.Height {
		return t, nil
	}

	src := t.Image()
	rect := image.Rect(0, 0, int(w), int(h))
	var dst draw.Image
	if t.Format == Luminance8 {
		dst = image.NewGray(rect)
	} else {
		dst = image.NewRGBA(rect)
	}
	xdraw.BiLinear.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst), nil
}

func nextPowerOfTwo(v uint32) uint32 {
	p := uint32(1)
	for p < v {
		p <<= 1
	}
	return p
}
