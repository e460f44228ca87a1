package scene

import (
	"fmt"
	"math"

	"github.com/Oygron/raytracer/types"
)

const (
	DefaultCameraWidth  uint32  = 1024
	DefaultCameraHeight uint32  = 768
	DefaultCameraFOV    float64 = 90.0
)

// The default camera up vector.
var DefaultCameraUp = types.XYZ(0, 0, 1)

// The camera type generates primary rays for image pixels.
type Camera struct {
	position types.Vec3

	// Orthonormal view basis.
	dir  types.Vec3
	up   types.Vec3
	left types.Vec3

	// Per-pixel direction increments along the image rows and columns.
	pxDown types.Vec3
	pxLeft types.Vec3

	width  uint32
	height uint32

	// Horizontal field of view in degrees.
	fov float64
}

// A functional option for configuring the camera.
type CameraOption func(*cameraConfig)

type cameraConfig struct {
	up     types.Vec3
	width  uint32
	height uint32
	fov    float64
}

// Override the camera up vector.
func WithUp(up types.Vec3) CameraOption {
	return func(c *cameraConfig) {
		c.up = up
	}
}

// Override the camera resolution.
func WithResolution(width, height uint32) CameraOption {
	return func(c *cameraConfig) {
		c.width, c.height = width, height
	}
}

// Override the horizontal field of view (in degrees).
func WithFOV(fov float64) CameraOption {
	return func(c *cameraConfig) {
		c.fov = fov
	}
}

// Create a new camera located at pos and looking towards dir. Construction
// fails if dir is zero or parallel to the up vector.
func NewCamera(pos, dir types.Vec3, opts ...CameraOption) (*Camera, error) {
	cfg := cameraConfig{
		up:     DefaultCameraUp,
		width:  DefaultCameraWidth,
		height: DefaultCameraHeight,
		fov:    DefaultCameraFOV,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if pos.IsInvalid() || dir.IsInvalid() || cfg.up.IsInvalid() {
		return nil, fmt.Errorf("scene: invalid camera vectors pos=%v dir=%v up=%v", pos, dir, cfg.up)
	}
	if cfg.width == 0 || cfg.height == 0 {
		return nil, fmt.Errorf("scene: invalid camera resolution %dx%d", cfg.width, cfg.height)
	}
	if math.IsNaN(cfg.fov) || cfg.fov <= 0 || cfg.fov >= 360 {
		return nil, fmt.Errorf("scene: camera fov must be in (0, 360); got %v", cfg.fov)
	}

	dir, err := dir.Normalize()
	if err != nil {
		return nil, fmt.Errorf("scene: invalid camera direction: %w", err)
	}

	// Make up orthogonal to dir
	up, err := cfg.up.Sub(dir.Mul(cfg.up.Dot(dir))).Normalize()
	if err != nil {
		return nil, fmt.Errorf("scene: camera up vector is parallel to the view direction: %w", err)
	}
	left := up.Cross(dir)

	pxAngle := -cfg.fov * math.Pi / 180.0 / float64(cfg.width)

	return &Camera{
		position: pos,
		dir:      dir,
		up:       up,
		left:     left,
		pxDown:   up.Mul(pxAngle),
		pxLeft:   left.Mul(pxAngle),
		width:    cfg.width,
		height:   cfg.height,
		fov:      cfg.fov,
	}, nil
}

// Generate a ray for pixel coordinates (px, py). Coordinates may be
// fractional which allows callers to jitter samples inside a pixel.
func (c *Camera) Ray(px, py float64) (types.Ray, error) {
	dx := px - float64(c.width)/2.0
	dy := py - float64(c.height)/2.0

	dir := c.dir.Add(c.pxLeft.Mul(dx)).Add(c.pxDown.Mul(dy))
	return types.NewRay(c.position, dir)
}

// Get camera position.
func (c *Camera) Position() types.Vec3 {
	return c.position
}

// Get the normalized view direction.
func (c *Camera) Direction() types.Vec3 {
	return c.dir
}

// Get the orthogonalized up vector.
func (c *Camera) Up() types.Vec3 {
	return c.up
}

// Get horizontal field of view in degrees.
func (c *Camera) FOV() float64 {
	return c.fov
}

// Get horizontal resolution.
func (c *Camera) Width() uint32 {
	return c.width
}

// Get vertical resolution.
func (c *Camera) Height() uint32 {
	return c.height
}
