package scene

import (
	"errors"
	"testing"

	"github.com/Oygron/raytracer/types"
)

func TestCameraDefaults(t *testing.T) {
	cam, err := NewCamera(types.XYZ(0, 0, 0), types.XYZ(2, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	if cam.Width() != 1024 || cam.Height() != 768 {
		t.Fatalf("expected default resolution 1024x768; got %dx%d", cam.Width(), cam.Height())
	}
	if cam.FOV() != 90 {
		t.Fatalf("expected default fov 90; got %v", cam.FOV())
	}
	if cam.Up() != types.XYZ(0, 0, 1) {
		t.Fatalf("expected default up vector (0, 0, 1); got %v", cam.Up())
	}
	if cam.Direction() != types.XYZ(1, 0, 0) {
		t.Fatalf("expected normalized direction (1, 0, 0); got %v", cam.Direction())
	}
}

func TestCameraRays(t *testing.T) {
	cam, err := NewCamera(
		types.XYZ(1, 2, 3),
		types.XYZ(1, 0, 0),
		WithResolution(4, 2),
		WithFOV(90),
	)
	if err != nil {
		t.Fatal(err)
	}

	// The image center maps to the view direction
	ray, err := cam.Ray(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ray.Origin != types.XYZ(1, 2, 3) {
		t.Fatalf("expected ray to start at the camera position; got %v", ray.Origin)
	}
	if !ray.Dir.ApproxEqual(types.XYZ(1, 0, 0), 1e-12) {
		t.Fatalf("expected center ray direction (1, 0, 0); got %v", ray.Dir)
	}

	// Moving right along a row turns the ray towards -Y (camera right)
	ray, err = cam.Ray(3.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ray.Dir.Y >= 0 || ray.Dir.Z != 0 {
		t.Fatalf("expected ray to turn right; got %v", ray.Dir)
	}

	// Moving down along a column turns the ray towards -Z
	ray, err = cam.Ray(2, 1.75)
	if err != nil {
		t.Fatal(err)
	}
	if ray.Dir.Z >= 0 || ray.Dir.Y != 0 {
		t.Fatalf("expected ray to turn down; got %v", ray.Dir)
	}

	// Each pixel step changes the angle by fov/width radians (small angle)
	fine, err := NewCamera(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), WithResolution(1000, 1000), WithFOV(1))
	if err != nil {
		t.Fatal(err)
	}
	ray, _ = fine.Ray(501, 500)
	expStep := 1.0 * 3.141592653589793 / 180.0 / 1000.0
	if d := -ray.Dir.Y / ray.Dir.X; d < expStep*0.999 || d > expStep*1.001 {
		t.Fatalf("expected per pixel step of %v radians; got %v", expStep, d)
	}
}

func TestCameraUpOrthogonalization(t *testing.T) {
	cam, err := NewCamera(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), WithUp(types.XYZ(1, 0, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if !cam.Up().ApproxEqual(types.XYZ(0, 0, 1), 1e-12) {
		t.Fatalf("expected orthogonalized up vector (0, 0, 1); got %v", cam.Up())
	}
}

func TestCameraErrors(t *testing.T) {
	_, err := NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, 5))
	if !errors.Is(err, types.ErrDegenerateVector) {
		t.Fatalf("expected degenerate vector error for up parallel to direction; got %v", err)
	}

	_, err = NewCamera(types.XYZ(0, 0, 0), types.Vec3{})
	if !errors.Is(err, types.ErrDegenerateVector) {
		t.Fatalf("expected degenerate vector error for zero direction; got %v", err)
	}

	if _, err = NewCamera(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), WithResolution(0, 10)); err == nil {
		t.Fatal("expected an error for zero resolution")
	}

	if _, err = NewCamera(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), WithFOV(-10)); err == nil {
		t.Fatal("expected an error for negative fov")
	}
}
