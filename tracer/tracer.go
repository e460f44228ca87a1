package tracer

import (
	"math"
	"sync/atomic"

	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/types"
)

const (
	// The bounce limit used when none is specified.
	DefaultMaxBounces uint32 = 3

	// Occluders closer than the light by less than this amount do not
	// cast a shadow. It prevents surfaces from shadowing themselves due to
	// rounding errors.
	shadowEpsilon = 1e-9

	// Reflected rays start this far above the surface so they do not
	// immediately hit the surface they originate from.
	surfaceOffset = 1e-9
)

// Controls how a shadow ray that hits nothing is interpreted.
type VisibilityPolicy uint8

const (
	// A light counts as visible only if the shadow ray cast from the light
	// reaches the shaded point. A shadow ray that hits nothing at all is
	// treated as "not visible".
	RequireShadowHit VisibilityPolicy = iota

	// A shadow ray that hits nothing means that nothing blocks the light.
	MissIsVisible
)

func (p VisibilityPolicy) String() string {
	switch p {
	case RequireShadowHit:
		return "require-hit"
	case MissIsVisible:
		return "miss-is-visible"
	}
	return "unknown"
}

// A source of uniformly distributed numbers in [0, 1). A Sampler must only be
// used by a single goroutine; *rand.Rand satisfies this interface.
type Sampler interface {
	Float64() float64
}

// Tracer evaluates the radiance carried by rays in a scene. A Tracer does not
// hold any per-ray state and can be shared by concurrent goroutines as long
// as each goroutine supplies its own Sampler.
type Tracer struct {
	scene      *scene.Scene
	visibility VisibilityPolicy

	rayCount atomic.Uint64
}

// Create a new tracer for a scene.
func New(sc *scene.Scene, visibility VisibilityPolicy) *Tracer {
	return &Tracer{
		scene:      sc,
		visibility: visibility,
	}
}

// Get the number of rays (primary, reflected and shadow) cast so far.
func (tr *Tracer) RayCount() uint64 {
	return tr.rayCount.Load()
}

// Estimate the radiance of pixel (col, row) by tracing a single ray through
// a random point inside the pixel.
func (tr *Tracer) Sample(col, row, maxBounces uint32, rng Sampler) (types.Color, error) {
	ray, err := tr.scene.Camera.Ray(float64(col)+rng.Float64(), float64(row)+rng.Float64())
	if err != nil {
		return types.Color{}, err
	}
	return tr.SendRay(ray, maxBounces, rng), nil
}

// Get the radiance arriving along a ray. Depth is the number of remaining
// bounces; when it reaches zero only the ambient term is returned.
func (tr *Tracer) SendRay(ray types.Ray, depth uint32, rng Sampler) types.Color {
	ambient := tr.scene.Ambient.Radiance()
	if depth == 0 {
		return ambient
	}

	tr.rayCount.Add(1)
	hit, ok := tr.scene.Intersect(ray)
	if !ok {
		return ambient
	}

	mat := hit.Material
	color := tr.diffuse(hit).Scale(1 - mat.Reflectivity)
	if mat.Reflectivity <= 0 {
		return color
	}

	mirror := ray.Dir.Reflect(hit.Normal)
	reflected := tr.reflection(hit, mirror, depth, rng)
	highlight := tr.highlight(hit, mirror)

	return color.Add(reflected.Add(highlight).Scale(mat.Reflectivity))
}

// Calculate ambient and direct (shadowed) lambertian lighting at a hit point.
func (tr *Tracer) diffuse(hit scene.Intersect) types.Color {
	mat := hit.Material
	color := mat.Diffuse.Mul(tr.scene.Ambient.Radiance())

	for _, light := range tr.scene.Lights {
		dist, visible := tr.lightVisible(light, hit.Position)
		if !visible {
			continue
		}

		// The lambertian factor is not normalized; together with the
		// squared distance this yields a cos/dist falloff.
		factor := hit.Normal.Dot(light.Position.Sub(hit.Position))
		if factor <= 0 {
			continue
		}

		color = color.Add(mat.Diffuse.Mul(light.Radiance()).Scale(factor / (dist * dist)))
	}

	return color
}

// Trace a glossy reflection ray inside a cone around the mirror direction.
func (tr *Tracer) reflection(hit scene.Intersect, mirror types.Vec3, depth uint32, rng Sampler) types.Color {
	mat := hit.Material
	halfAngle := rng.Float64() * mat.Roughness * math.Pi / 2
	azimuth := rng.Float64() * 2 * math.Pi

	ray, err := types.NewRay(
		hit.Position.Add(hit.Normal.Mul(surfaceOffset)),
		perturb(mirror, halfAngle, azimuth),
	)
	if err != nil {
		return types.Color{}
	}

	return mat.Specular.Mul(tr.SendRay(ray, depth-1, rng))
}

// Calculate the specular highlight for all visible lights plus the ambient
// specular term.
func (tr *Tracer) highlight(hit scene.Intersect, mirror types.Vec3) types.Color {
	mat := hit.Material
	color := mat.Specular.Mul(tr.scene.Ambient.Radiance())

	for _, light := range tr.scene.Lights {
		dist, visible := tr.lightVisible(light, hit.Position)
		if !visible {
			continue
		}

		lightDir := light.Position.Sub(hit.Position).Div(dist)
		angle := math.Acos(math.Max(-1, math.Min(1, mirror.Dot(lightDir))))
		scaled := angle / mat.Roughness
		if scaled > math.Pi/2 {
			continue
		}

		color = color.Add(mat.Specular.Mul(light.Radiance()).Scale(math.Cos(scaled) / (dist * dist * mat.Roughness)))
	}

	return color
}

// Check whether a point light reaches pos by casting a ray from the light
// towards pos. It returns the distance between the light and pos.
func (tr *Tracer) lightVisible(light scene.PointLight, pos types.Vec3) (float64, bool) {
	shadowRay, err := types.NewRay(light.Position, pos.Sub(light.Position))
	if err != nil {
		// The light sits exactly on the surface
		return 0, false
	}
	distLight := light.Position.Sub(pos).Len()

	tr.rayCount.Add(1)
	occluder, ok := tr.scene.Intersect(shadowRay)
	if !ok {
		return distLight, tr.visibility == MissIsVisible
	}
	if occluder.Dist < distLight-shadowEpsilon {
		return distLight, false
	}
	return distLight, true
}

// Rotate a unit direction by halfAngle away from itself; azimuth selects the
// rotation plane around dir.
func perturb(dir types.Vec3, halfAngle, azimuth float64) types.Vec3 {
	// Seed the basis with the axis least aligned with dir so the cross
	// product never degenerates.
	abs := dir.Abs()
	var axis types.Vec3
	switch {
	case abs.X <= abs.Y && abs.X <= abs.Z:
		axis = types.XYZ(1, 0, 0)
	case abs.Y <= abs.Z:
		axis = types.XYZ(0, 1, 0)
	default:
		axis = types.XYZ(0, 0, 1)
	}

	u, err := dir.Cross(axis).Normalize()
	if err != nil {
		return dir
	}
	w := dir.Cross(u)

	offset := u.Mul(math.Cos(azimuth)).Add(w.Mul(math.Sin(azimuth)))
	return dir.Mul(math.Cos(halfAngle)).Add(offset.Mul(math.Sin(halfAngle)))
}
