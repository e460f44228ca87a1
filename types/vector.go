package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateVector is returned when normalizing a zero-length vector.
var ErrDegenerateVector = errors.New("types: degenerate vector")

// Vec3 is used both as a point and as a direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Define a 3 component vector.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v.X + v2.X, v.Y + v2.Y, v.Z + v2.Z}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v.X - v2.X, v.Y - v2.Y, v.Z - v2.Z}
}

// Multiply vector with a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Divide vector by a scalar.
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Negate vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Calculate dot product of 2 vectors.
func (v Vec3) Dot(v2 Vec3) float64 {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v.Y*v2.Z - v.Z*v2.Y, v.Z*v2.X - v.X*v2.Z, v.X*v2.Y - v.Y*v2.X}
}

// Get squared vector length.
func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

// Get vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize vector. Zero-length vectors cannot be normalized and yield
// ErrDegenerateVector; callers decide how to recover.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Len()
	if l == 0 {
		return Vec3{}, ErrDegenerateVector
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Reflect v about the plane orthogonal to the unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Get absolute value of each component.
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Returns true if any component is NaN or infinite.
func (v Vec3) IsInvalid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return true
		}
	}
	return false
}

// Returns true if all components of v and v2 are within eps of each other.
func (v Vec3) ApproxEqual(v2 Vec3, eps float64) bool {
	return math.Abs(v.X-v2.X) <= eps && math.Abs(v.Y-v2.Y) <= eps && math.Abs(v.Z-v2.Z) <= eps
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
