package scene

import (
	"fmt"
	"math"

	"github.com/Oygron/raytracer/types"
)

// The result of a successful ray-object intersection test.
type Intersect struct {
	// Hit position in world space.
	Position types.Vec3

	// Distance along the ray. Always > 0.
	Dist float64

	// Unit surface normal at the hit position.
	Normal types.Vec3

	// The material at the hit position. This is a copy so that objects
	// are free to resolve per-face materials.
	Material Material
}

// A sphere primitive.
type Sphere struct {
	Center   types.Vec3
	Radius   float64
	Material Material
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float64, material Material) (*Sphere, error) {
	if center.IsInvalid() {
		return nil, fmt.Errorf("scene: invalid sphere center %v", center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, fmt.Errorf("scene: sphere radius must be a positive number; got %v", radius)
	}
	if err := material.Validate(); err != nil {
		return nil, err
	}

	return &Sphere{Center: center, Radius: radius, Material: material}, nil
}

// Intersect the sphere with a ray.
func (s *Sphere) Intersect(ray types.Ray) (Intersect, bool) {
	// Points along the ray satisfy |o + k*d - c|² = r² which expands to
	// k²|d|² + 2k(o-c)·d + |o-c|² - r² = 0.
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.LenSq()
	b := 2.0 * oc.Dot(ray.Dir)
	c := oc.LenSq() - s.Radius*s.Radius

	dist, ok := solveQuadratic(a, b, c)
	if !ok || dist <= 0 {
		return Intersect{}, false
	}

	pos := ray.At(dist)
	normal, err := pos.Sub(s.Center).Normalize()
	if err != nil {
		return Intersect{}, false
	}

	return Intersect{
		Position: pos,
		Dist:     dist,
		Normal:   normal,
		Material: s.Material,
	}, true
}

// Solve a*x² + b*x + c = 0 and return the lowest non-negative root.
func solveQuadratic(a, b, c float64) (float64, bool) {
	delta := b*b - 4*a*c
	if delta < 0 {
		return 0, false
	}
	sqrtDelta := math.Sqrt(delta)

	// The sign of a determines which branch yields the lower root.
	lo, hi := (-b-sqrtDelta)/(2*a), (-b+sqrtDelta)/(2*a)
	if a < 0 {
		lo, hi = hi, lo
	}

	if lo >= 0 {
		return lo, true
	}
	if hi >= 0 {
		return hi, true
	}
	return 0, false
}

// A single triangular face. Faces are visible only from their front side.
type Face struct {
	vertices [3]types.Vec3
	normal   types.Vec3

	// Edge vectors crossed with the normal; they point towards the inside of
	// the triangle and speed up the point-in-triangle test.
	inside [3]types.Vec3
}

// Create a new face. Vertices that do not span a plane are rejected.
func NewFace(a, b, c types.Vec3) (Face, error) {
	for _, v := range [3]types.Vec3{a, b, c} {
		if v.IsInvalid() {
			return Face{}, fmt.Errorf("scene: invalid face vertex %v", v)
		}
	}

	normal, err := b.Sub(a).Cross(b.Sub(c)).Normalize()
	if err != nil {
		return Face{}, fmt.Errorf("scene: face %v, %v, %v has no area: %w", a, b, c, err)
	}

	return Face{
		vertices: [3]types.Vec3{a, b, c},
		normal:   normal,
		inside: [3]types.Vec3{
			b.Sub(a).Cross(normal),
			c.Sub(b).Cross(normal),
			a.Sub(c).Cross(normal),
		},
	}, nil
}

// Get face vertices.
func (f Face) Vertices() [3]types.Vec3 {
	return f.vertices
}

// Get face normal.
func (f Face) Normal() types.Vec3 {
	return f.normal
}

// Intersect the face with a ray. The returned intersect carries the default
// material; meshes substitute their own.
func (f Face) Intersect(ray types.Ray) (Intersect, bool) {
	// Reject rays parallel to the face or hitting it from the back
	dirDotN := ray.Dir.Dot(f.normal)
	if dirDotN >= 0 {
		return Intersect{}, false
	}

	a, b, c := f.vertices[0], f.vertices[1], f.vertices[2]

	// Plane: n·(p - a) = 0; ray: p = o + k*d  =>  k = n·(a - o) / n·d
	dist := f.normal.Dot(a.Sub(ray.Origin)) / dirDotN
	if dist <= 0 {
		return Intersect{}, false
	}

	pos := ray.At(dist)
	if f.inside[0].Dot(pos.Sub(a)) < 0 ||
		f.inside[1].Dot(pos.Sub(b)) < 0 ||
		f.inside[2].Dot(pos.Sub(c)) < 0 {
		return Intersect{}, false
	}

	return Intersect{
		Position: pos,
		Dist:     dist,
		Normal:   f.normal,
		Material: DefaultMaterial(),
	}, true
}

// A list of faces sharing a material.
type Mesh struct {
	Faces    []Face
	Material Material
}

// Create a new mesh.
func NewMesh(faces []Face, material Material) (*Mesh, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("scene: mesh has no faces")
	}
	if err := material.Validate(); err != nil {
		return nil, err
	}
	return &Mesh{Faces: faces, Material: material}, nil
}

// Intersect the mesh with a ray and return the nearest face hit. When two
// faces are hit at the same distance, the first one wins.
func (m *Mesh) Intersect(ray types.Ray) (Intersect, bool) {
	var (
		nearest Intersect
		found   bool
	)
	for _, face := range m.Faces {
		hit, ok := face.Intersect(ray)
		if !ok {
			continue
		}
		if !found || hit.Dist < nearest.Dist {
			nearest = hit
			found = true
		}
	}

	if !found {
		return Intersect{}, false
	}
	nearest.Material = m.Material
	return nearest, true
}

type ObjectType uint8

const (
	SphereObject ObjectType = iota
	MeshObject
)

func (t ObjectType) String() string {
	switch t {
	case SphereObject:
		return "sphere"
	case MeshObject:
		return "mesh"
	}
	return "unknown"
}

// A scene object. Objects form a closed set; the Type field selects which of
// the payload pointers is populated.
type Object struct {
	Type ObjectType

	sphere *Sphere
	mesh   *Mesh
}

// Wrap a sphere into a scene object.
func NewSphereObject(s *Sphere) Object {
	return Object{Type: SphereObject, sphere: s}
}

// Wrap a mesh into a scene object.
func NewMeshObject(m *Mesh) Object {
	return Object{Type: MeshObject, mesh: m}
}

// Get the wrapped sphere or nil if this is not a sphere object.
func (o Object) Sphere() *Sphere {
	return o.sphere
}

// Get the wrapped mesh or nil if this is not a mesh object.
func (o Object) Mesh() *Mesh {
	return o.mesh
}

// Intersect the object with a ray.
func (o Object) Intersect(ray types.Ray) (Intersect, bool) {
	switch o.Type {
	case SphereObject:
		return o.sphere.Intersect(ray)
	case MeshObject:
		return o.mesh.Intersect(ray)
	}
	return Intersect{}, false
}

// Get object material.
func (o Object) Material() Material {
	switch o.Type {
	case SphereObject:
		return o.sphere.Material
	case MeshObject:
		return o.mesh.Material
	}
	return DefaultMaterial()
}
