package types

import (
	"fmt"
	"math"
)

// An RGB triplet. Channels are unbounded while radiance is accumulated.
type Color struct {
	R, G, B float64
}

// Define a color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Add a color.
func (c Color) Add(c2 Color) Color {
	return Color{c.R + c2.R, c.G + c2.G, c.B + c2.B}
}

// Multiply channels component-wise.
func (c Color) Mul(c2 Color) Color {
	return Color{c.R * c2.R, c.G * c2.G, c.B * c2.B}
}

// Scale all channels.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Clamp channels to the [0, 1] range.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Get the max channel value.
func (c Color) MaxComponent() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Compare colors using a per-channel tolerance.
func (c Color) ApproxEqual(c2 Color, eps float64) bool {
	return math.Abs(c.R-c2.R) <= eps && math.Abs(c.G-c2.G) <= eps && math.Abs(c.B-c2.B) <= eps
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c Color) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}
