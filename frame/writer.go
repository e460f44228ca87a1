package frame

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Image encoder signature.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	".png": png.Encode,
	".webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
	".tga": tga.Encode,
}

// Get the encoder for a filename based on its extension.
func EncoderFor(filename string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedType, ext)
	}
	return enc, nil
}

// Encode a normalized frame to w using enc. The image is resampled when
// scale differs from 1.
func Encode(f *Frame, w io.Writer, enc Encoder, scale float64) error {
	img, err := f.Image()
	if err != nil {
		return err
	}
	if scale > 0 && scale != 1 {
		img = Scale(img, scale)
	}
	return enc(w, img)
}

// Write a normalized frame to a file. The image format is selected by the
// file extension (png, webp or tga). Missing parent folders are created.
func Write(f *Frame, filename string, scale float64) error {
	enc, err := EncoderFor(filename)
	if err != nil {
		return err
	}
	if !f.normalized {
		return ErrNotNormalized
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err = Encode(f, out, enc, scale); err != nil {
		out.Close()
		os.Remove(filename)
		return fmt.Errorf("frame: could not encode %s: %w", filename, err)
	}
	return out.Close()
}
