// Package frame holds rendered radiance buffers and converts them to images.
package frame

import (
	"errors"
	"math"

	"github.com/Oygron/raytracer/types"
)

var (
	ErrEmptyFrame      = errors.New("frame: empty frame")
	ErrNonPositiveMax  = errors.New("frame: max radiance is not positive")
	ErrNotNormalized   = errors.New("frame: frame must be normalized before encoding")
	ErrUnsupportedType = errors.New("frame: unsupported image format")
)

// A row-major buffer of RGB radiance values.
type Frame struct {
	Width  uint32
	Height uint32

	// Three channels per pixel.
	Data []float64

	normalized bool
}

// Create a new frame filled with zeros.
func New(width, height uint32) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Data:   make([]float64, 3*int(width)*int(height)),
	}
}

// Set pixel color.
func (f *Frame) Set(col, row uint32, c types.Color) {
	offset := 3 * (int(row)*int(f.Width) + int(col))
	f.Data[offset] = c.R
	f.Data[offset+1] = c.G
	f.Data[offset+2] = c.B
}

// Get pixel color.
func (f *Frame) At(col, row uint32) types.Color {
	offset := 3 * (int(row)*int(f.Width) + int(col))
	return types.Color{R: f.Data[offset], G: f.Data[offset+1], B: f.Data[offset+2]}
}

// Returns true if Normalize has been applied to the frame data.
func (f *Frame) IsNormalized() bool {
	return f.normalized
}

// Scale frame data in place so that the brightest channel becomes 1.
func (f *Frame) Normalize() error {
	data, err := Normalize(f.Data)
	if err != nil {
		return err
	}
	f.Data = data
	f.normalized = true
	return nil
}

// Divide every element by the global maximum. An empty buffer or a maximum
// that is not strictly positive is an error.
func Normalize(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}

	max := math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) {
			return nil, ErrNonPositiveMax
		}
		if v > max {
			max = v
		}
	}
	if max <= 0 || math.IsInf(max, 1) {
		return nil, ErrNonPositiveMax
	}

	out := make([]float64, len(data))
	for idx, v := range data {
		out[idx] = v / max
	}
	return out, nil
}
