package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/Oygron/raytracer/types"
)

func unitRay(origin, dir types.Vec3) types.Ray {
	r, err := types.NewRay(origin, dir)
	if err != nil {
		panic(err)
	}
	return r
}

func TestSolveQuadratic(t *testing.T) {
	type spec struct {
		a, b, c float64
		expOk   bool
		expRoot float64
	}
	specs := []spec{
		{1, 0, 1, false, 0},
		{-4, 5, -1, true, 0.25},
		{4, -5, -12, true, 2.4663649828320295},
		{4, 5, 1, false, 0},
	}

	for index, s := range specs {
		root, ok := solveQuadratic(s.a, s.b, s.c)
		if ok != s.expOk {
			t.Fatalf("[spec %d] expected ok to be %t; got %t", index, s.expOk, ok)
		}
		if ok && root != s.expRoot {
			t.Fatalf("[spec %d] expected root %v; got %v", index, s.expRoot, root)
		}
	}
}

func TestSphereIntersection(t *testing.T) {
	origin := types.XYZ(0, 0, 0)
	ray := unitRay(origin, types.XYZ(1, 0, 0))

	type spec struct {
		center  types.Vec3
		expHit  bool
		expDist float64
		expPos  types.Vec3
	}
	specs := []spec{
		// in front
		{types.XYZ(2, 0, 0), true, 1.0, types.XYZ(1, 0, 0)},
		// ray starts inside
		{types.XYZ(0, 0, 0), true, 1.0, types.XYZ(1, 0, 0)},
		// above
		{types.XYZ(2, 0, 2), false, 0, types.Vec3{}},
		// behind
		{types.XYZ(-2, 0, 0), false, 0, types.Vec3{}},
	}

	for index, s := range specs {
		sphere, err := NewSphere(s.center, 1.0, DefaultMaterial())
		if err != nil {
			t.Fatal(err)
		}

		hit, ok := sphere.Intersect(ray)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if hit.Dist != s.expDist {
			t.Fatalf("[spec %d] expected hit distance %v; got %v", index, s.expDist, hit.Dist)
		}
		if hit.Position != s.expPos {
			t.Fatalf("[spec %d] expected hit position %v; got %v", index, s.expPos, hit.Position)
		}
	}
}

func TestGeneralSphereIntersection(t *testing.T) {
	sphere, err := NewSphere(types.XYZ(8, 4, 2), 3.0, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}
	ray := unitRay(types.XYZ(2, 3, 4), types.XYZ(1, 0.2, -0.3))

	hit, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("expected ray to hit the sphere")
	}

	if math.Abs(hit.Dist-3.410205739962394) > 1e-9 {
		t.Fatalf("expected hit distance 3.410205739962394; got %v", hit.Dist)
	}
	expPos := types.XYZ(5.208051705064151, 3.6416103410128304, 3.037584488480755)
	if !hit.Position.ApproxEqual(expPos, 1e-9) {
		t.Fatalf("expected hit position %v; got %v", expPos, hit.Position)
	}
	if math.Abs(hit.Normal.Len()-1) > 1e-12 {
		t.Fatalf("expected unit normal; got %v", hit.Normal)
	}
}

func TestSphereIntersectionAtOrigin(t *testing.T) {
	// The ray starts on the sphere surface and points away from it.
	sphere, err := NewSphere(types.XYZ(-1, 0, 0), 1.0, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sphere.Intersect(unitRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0))); ok {
		t.Fatal("expected hits at distance 0 to be rejected")
	}
}

func TestInvalidSphere(t *testing.T) {
	type spec struct {
		center   types.Vec3
		radius   float64
		material Material
		expErr   string
	}
	specs := []spec{
		{types.XYZ(0, 0, 0), 0, DefaultMaterial(), "sphere radius must be a positive number"},
		{types.XYZ(0, 0, 0), -1, DefaultMaterial(), "sphere radius must be a positive number"},
		{types.XYZ(0, 0, 0), math.NaN(), DefaultMaterial(), "sphere radius must be a positive number"},
		{types.XYZ(math.NaN(), 0, 0), 1, DefaultMaterial(), "invalid sphere center"},
		{types.XYZ(0, 0, 0), 1, Material{Roughness: 0}, "roughness must be > 0"},
		{types.XYZ(0, 0, 0), 1, Material{Roughness: 1, Reflectivity: 1.5}, "reflectivity must be in [0, 1]"},
	}

	for index, s := range specs {
		_, err := NewSphere(s.center, s.radius, s.material)
		if err == nil || !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expErr, err)
		}
	}
}

func createFace(t *testing.T) Face {
	face, err := NewFace(
		types.XYZ(1, 1, -1),
		types.XYZ(1, 0, 1),
		types.XYZ(1, -1, -1),
	)
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func TestFaceNormal(t *testing.T) {
	face := createFace(t)
	if exp := types.XYZ(-1, 0, 0); face.Normal() != exp {
		t.Fatalf("expected face normal %v; got %v", exp, face.Normal())
	}
}

func TestFaceIntersection(t *testing.T) {
	face := createFace(t)

	type spec struct {
		origin types.Vec3
		dir    types.Vec3
		expHit bool
	}
	specs := []spec{
		// in front
		{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), true},
		// face behind ray origin
		{types.XYZ(2, 0, 0), types.XYZ(1, 0, 0), false},
		// parallel
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), false},
		// outside triangle
		{types.XYZ(0, 0.75, 0), types.XYZ(1, 0, 0), false},
		// back face
		{types.XYZ(2, 0, 0), types.XYZ(-1, 0, 0), false},
		// on edge
		{types.XYZ(0, 0, -1), types.XYZ(1, 0, 0), true},
	}

	for index, s := range specs {
		hit, ok := face.Intersect(unitRay(s.origin, s.dir))
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if hit.Dist != 1.0 {
			t.Fatalf("[spec %d] expected hit distance 1; got %v", index, hit.Dist)
		}
		if exp := s.origin.Add(types.XYZ(1, 0, 0)); hit.Position != exp {
			t.Fatalf("[spec %d] expected hit position %v; got %v", index, exp, hit.Position)
		}
	}
}

func TestDegenerateFace(t *testing.T) {
	_, err := NewFace(types.XYZ(0, 0, 0), types.XYZ(1, 1, 1), types.XYZ(2, 2, 2))
	if err == nil || !strings.Contains(err.Error(), "has no area") {
		t.Fatalf("expected degenerate face error; got %v", err)
	}
}

func TestMeshIntersection(t *testing.T) {
	near := createFace(t)
	far, err := NewFace(
		types.XYZ(3, 1, -1),
		types.XYZ(3, 0, 1),
		types.XYZ(3, -1, -1),
	)
	if err != nil {
		t.Fatal(err)
	}

	mat := Material{Diffuse: types.RGB(0.1, 0.2, 0.3), Roughness: 0.5, Reflectivity: 0.25}
	mesh, err := NewMesh([]Face{far, near}, mat)
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := mesh.Intersect(unitRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)))
	if !ok {
		t.Fatal("expected ray to hit the mesh")
	}
	if hit.Dist != 1.0 {
		t.Fatalf("expected nearest face at distance 1; got %v", hit.Dist)
	}
	if hit.Material != mat {
		t.Fatalf("expected mesh material %v; got %v", mat, hit.Material)
	}

	if _, ok = mesh.Intersect(unitRay(types.XYZ(0, 5, 0), types.XYZ(1, 0, 0))); ok {
		t.Fatal("expected ray to miss the mesh")
	}

	if _, err = NewMesh(nil, mat); err == nil {
		t.Fatal("expected an error for a mesh without faces")
	}
}

func TestObjectDispatch(t *testing.T) {
	mat := Material{Diffuse: types.RGB(1, 0, 0), Roughness: 1}
	sphere, err := NewSphere(types.XYZ(2, 0, 0), 1, mat)
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := NewMesh([]Face{createFace(t)}, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}

	sObj := NewSphereObject(sphere)
	mObj := NewMeshObject(mesh)

	if sObj.Type != SphereObject || sObj.Sphere() != sphere || sObj.Mesh() != nil {
		t.Fatal("expected sphere object to wrap the sphere")
	}
	if mObj.Type != MeshObject || mObj.Mesh() != mesh || mObj.Sphere() != nil {
		t.Fatal("expected mesh object to wrap the mesh")
	}
	if sObj.Material() != mat {
		t.Fatalf("expected sphere object material %v; got %v", mat, sObj.Material())
	}
	if mObj.Type.String() != "mesh" || sObj.Type.String() != "sphere" {
		t.Fatalf("unexpected object type names %q, %q", sObj.Type, mObj.Type)
	}
}
