package scene

import (
	"fmt"
	"math"

	"github.com/Oygron/raytracer/types"
)

// A constant, position-independent light applied to every intersection and to
// rays that escape the scene.
type AmbientLight struct {
	Color     types.Color
	Intensity float64
}

// Get the ambient light contribution.
func (l AmbientLight) Radiance() types.Color {
	return l.Color.Scale(l.Intensity)
}

// A light source located at a point in space.
type PointLight struct {
	Position  types.Vec3
	Color     types.Color
	Intensity float64
}

// Get the light color scaled by its intensity.
func (l PointLight) Radiance() types.Color {
	return l.Color.Scale(l.Intensity)
}

// Create a new point light.
func NewPointLight(pos types.Vec3, color types.Color, intensity float64) (PointLight, error) {
	if pos.IsInvalid() {
		return PointLight{}, fmt.Errorf("scene: invalid point light position %v", pos)
	}
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return PointLight{}, fmt.Errorf("scene: invalid point light intensity %v", intensity)
	}
	return PointLight{Position: pos, Color: color, Intensity: intensity}, nil
}
