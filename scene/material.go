package scene

import (
	"fmt"
	"math"

	"github.com/Oygron/raytracer/types"
)

// Defines a surface material.
type Material struct {
	// Base (diffuse) color.
	Diffuse types.Color

	// Specular color used by the highlight and reflection terms.
	Specular types.Color

	// Fraction of energy diverted from the diffuse term to the
	// reflective/specular terms. Must be in [0, 1].
	Reflectivity float64

	// Controls both the angular falloff of the specular highlight and
	// the half-angle of the reflection sampling cone. Must be > 0.
	Roughness float64
}

// The material assigned to surfaces that do not define one.
func DefaultMaterial() Material {
	return Material{
		Roughness: 1.0,
	}
}

// Validate material parameters.
func (m Material) Validate() error {
	if math.IsNaN(m.Reflectivity) || m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("scene: material reflectivity must be in [0, 1]; got %v", m.Reflectivity)
	}
	if math.IsNaN(m.Roughness) || m.Roughness <= 0 {
		return fmt.Errorf("scene: material roughness must be > 0; got %v", m.Roughness)
	}
	return nil
}
