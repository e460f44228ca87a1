package frame

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Convert normalized frame data to an 8-bit image. Channel values are
// mapped to [0, 255] by truncation.
func (f *Frame) Image() (*image.NRGBA, error) {
	if !f.normalized {
		return nil, ErrNotNormalized
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(f.Width), int(f.Height)))
	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			c := f.At(col, row).Clamp()
			img.SetNRGBA(int(col), int(row), color.NRGBA{
				R: uint8(c.R * 255),
				G: uint8(c.G * 255),
				B: uint8(c.B * 255),
				A: 255,
			})
		}
	}
	return img, nil
}

// Resample an image by a scale factor using a Catmull-Rom filter.
func Scale(img *image.NRGBA, scale float64) *image.NRGBA {
	b := img.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
