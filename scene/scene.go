package scene

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Oygron/raytracer/types"
	"github.com/olekukonko/tablewriter"
)

var (
	ErrMissingCamera = errors.New("scene: no camera defined")
	ErrNilObject     = errors.New("scene: object has no geometry")
)

// A renderable scene. Scenes are assembled once at load time and are not
// modified while rendering; they can be shared by any number of goroutines.
type Scene struct {
	Camera  *Camera
	Ambient AmbientLight
	Lights  []PointLight
	Objects []Object
}

// Create a new scene.
func NewScene(camera *Camera, ambient AmbientLight) (*Scene, error) {
	if camera == nil {
		return nil, ErrMissingCamera
	}
	return &Scene{
		Camera:  camera,
		Ambient: ambient,
		Lights:  make([]PointLight, 0),
		Objects: make([]Object, 0),
	}, nil
}

// Add a point light to the scene.
func (s *Scene) AddLight(light PointLight) {
	s.Lights = append(s.Lights, light)
}

// Add an object to the scene.
func (s *Scene) AddObject(obj Object) error {
	if (obj.Type == SphereObject && obj.sphere == nil) || (obj.Type == MeshObject && obj.mesh == nil) {
		return ErrNilObject
	}
	s.Objects = append(s.Objects, obj)
	return nil
}

// Find the nearest object hit by a ray. Objects are tested in order and the
// first one wins when two hits are at the same distance.
func (s *Scene) Intersect(ray types.Ray) (Intersect, bool) {
	var (
		nearest Intersect
		found   bool
	)
	for _, obj := range s.Objects {
		hit, ok := obj.Intersect(ray)
		if !ok {
			continue
		}
		if !found || hit.Dist < nearest.Dist {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// Count the triangular faces of all mesh objects.
func (s *Scene) FaceCount() int {
	count := 0
	for _, obj := range s.Objects {
		if obj.Type == MeshObject {
			count += len(obj.mesh.Faces)
		}
	}
	return count
}

// Build a tabular representation of scene statistics.
func (s *Scene) Stats() string {
	var spheres, meshes int
	for _, obj := range s.Objects {
		switch obj.Type {
		case SphereObject:
			spheres++
		case MeshObject:
			meshes++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Value"})
	table.Append([]string{"Camera", "Position", s.Camera.Position().String()})
	table.Append([]string{"", "Direction", s.Camera.Direction().String()})
	table.Append([]string{"", "Resolution", fmt.Sprintf("%dx%d", s.Camera.Width(), s.Camera.Height())})
	table.Append([]string{"", "FOV", fmt.Sprintf("%3.1f deg", s.Camera.FOV())})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Lights", "Ambient", fmt.Sprintf("%v x %g", s.Ambient.Color, s.Ambient.Intensity)})
	table.Append([]string{"", "Point", fmt.Sprintf("%d", len(s.Lights))})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Geometry", "Spheres", fmt.Sprintf("%d", spheres)})
	table.Append([]string{"", "Meshes", fmt.Sprintf("%d", meshes)})
	table.Append([]string{"", "Faces", fmt.Sprintf("%d", s.FaceCount())})
	table.SetFooter([]string{"Total", "Objects", fmt.Sprintf("%d", len(s.Objects))})

	table.Render()
	return buf.String()
}
