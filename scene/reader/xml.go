package reader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Oygron/raytracer/asset"
	"github.com/Oygron/raytracer/log"
	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/types"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrMissingCamera  = errors.New("reader: scene does not define a camera")
	ErrMissingAmbient = errors.New("reader: scene does not define an ambient light")
)

type xmlVec3 struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

func (v *xmlVec3) vec3() types.Vec3 {
	return types.XYZ(v.X, v.Y, v.Z)
}

// Color channels are clamped to [0, 1] when converted.
type xmlColor struct {
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
}

func (c *xmlColor) color() types.Color {
	return types.RGB(c.R, c.G, c.B).Clamp()
}

type xmlIntensity struct {
	I float64 `xml:"i,attr"`
}

type xmlRadius struct {
	R float64 `xml:"r,attr"`
}

type xmlResolution struct {
	Width  uint32 `xml:"width,attr"`
	Height uint32 `xml:"height,attr"`
}

type xmlFOV struct {
	Deg float64 `xml:"deg,attr"`
}

type xmlCamera struct {
	Pos        *xmlVec3       `xml:"pos"`
	Dir        *xmlVec3       `xml:"dir"`
	Up         *xmlVec3       `xml:"up"`
	Resolution *xmlResolution `xml:"resolution"`
	FOV        *xmlFOV        `xml:"fov"`
}

type xmlLight struct {
	Pos       *xmlVec3      `xml:"pos"`
	Color     *xmlColor     `xml:"color"`
	Intensity *xmlIntensity `xml:"intensity"`
}

type xmlMaterial struct {
	Color        *xmlColor  `xml:"color"`
	Specular     *xmlColor  `xml:"specular"`
	Reflectivity *xmlRadius `xml:"reflectivity"`
	Roughness    *xmlRadius `xml:"roughness"`
}

type xmlSphere struct {
	Pos      *xmlVec3     `xml:"pos"`
	Radius   *xmlRadius   `xml:"radius"`
	Material *xmlMaterial `xml:"material"`
}

type xmlMesh struct {
	File     string       `xml:"file,attr"`
	Material *xmlMaterial `xml:"material"`
}

// Reads scenes from XML documents. The root element is expected to be
// <scene>; its children are decoded in document order so the object order
// of the resulting scene matches the file.
type xmlSceneReader struct {
	logger log.Logger

	camera  *xmlCamera
	ambient *xmlLight
	lights  []scene.PointLight
	objects []scene.Object

	// The resource being parsed. Mesh files are resolved relative to it.
	sceneRes *asset.Resource
}

func newXmlReader() *xmlSceneReader {
	return &xmlSceneReader{
		logger: log.New("xml scene reader"),
	}
}

// Read scene definition.
func (r *xmlSceneReader) Read(sceneRes *asset.Resource, camOpts ...scene.CameraOption) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()
	r.sceneRes = sceneRes

	if err := r.parse(sceneRes); err != nil {
		return nil, fmt.Errorf("reader: %s: %w", sceneRes.Path(), err)
	}

	sc, err := r.build(camOpts)
	if err != nil {
		return nil, fmt.Errorf("reader: %s: %w", sceneRes.Path(), err)
	}

	r.logger.Noticef("parsed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

// Walk the document and decode each top-level scene element.
func (r *xmlSceneReader) parse(in io.Reader) error {
	dec := xml.NewDecoder(in)
	dec.CharsetReader = charsetReader

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "scene":
			continue
		case "camera":
			var cam xmlCamera
			if err = dec.DecodeElement(&cam, &se); err != nil {
				return err
			}
			if r.camera != nil {
				r.logger.Warning("scene defines multiple cameras; using the last one")
			}
			r.camera = &cam
		case "ambient_light", "ambiant_light":
			var light xmlLight
			if err = dec.DecodeElement(&light, &se); err != nil {
				return err
			}
			r.ambient = &light
		case "point_light":
			var light xmlLight
			if err = dec.DecodeElement(&light, &se); err != nil {
				return err
			}
			if err = r.addPointLight(&light); err != nil {
				return err
			}
		case "sphere":
			var sphere xmlSphere
			if err = dec.DecodeElement(&sphere, &se); err != nil {
				return err
			}
			if err = r.addSphere(&sphere); err != nil {
				return err
			}
		case "mesh":
			var mesh xmlMesh
			if err = dec.DecodeElement(&mesh, &se); err != nil {
				return err
			}
			if err = r.addMesh(&mesh); err != nil {
				return err
			}
		default:
			r.logger.Infof("skipping unsupported element <%s>", se.Name.Local)
			if err = dec.Skip(); err != nil {
				return err
			}
		}
	}
}

// Assemble the scene from the parsed elements.
func (r *xmlSceneReader) build(camOpts []scene.CameraOption) (*scene.Scene, error) {
	if r.camera == nil || r.camera.Pos == nil || r.camera.Dir == nil {
		return nil, ErrMissingCamera
	}
	if r.ambient == nil {
		return nil, ErrMissingAmbient
	}

	opts := make([]scene.CameraOption, 0, 3+len(camOpts))
	if r.camera.Up != nil {
		opts = append(opts, scene.WithUp(r.camera.Up.vec3()))
	}
	if r.camera.Resolution != nil {
		opts = append(opts, scene.WithResolution(r.camera.Resolution.Width, r.camera.Resolution.Height))
	}
	if r.camera.FOV != nil {
		opts = append(opts, scene.WithFOV(r.camera.FOV.Deg))
	}
	opts = append(opts, camOpts...)

	cam, err := scene.NewCamera(r.camera.Pos.vec3(), r.camera.Dir.vec3(), opts...)
	if err != nil {
		return nil, err
	}

	color, intensity, err := r.ambient.emission()
	if err != nil {
		return nil, fmt.Errorf("ambient_light: %w", err)
	}
	sc, err := scene.NewScene(cam, scene.AmbientLight{Color: color, Intensity: intensity})
	if err != nil {
		return nil, err
	}

	for _, light := range r.lights {
		sc.AddLight(light)
	}
	for _, obj := range r.objects {
		if err = sc.AddObject(obj); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func (r *xmlSceneReader) addPointLight(light *xmlLight) error {
	if light.Pos == nil {
		return errors.New("point_light: missing <pos>")
	}

	color, intensity, err := light.emission()
	if err != nil {
		return fmt.Errorf("point_light: %w", err)
	}
	pl, err := scene.NewPointLight(light.Pos.vec3(), color, intensity)
	if err != nil {
		return fmt.Errorf("point_light: %w", err)
	}
	r.lights = append(r.lights, pl)
	return nil
}

func (r *xmlSceneReader) addSphere(sphere *xmlSphere) error {
	if sphere.Pos == nil || sphere.Radius == nil {
		return errors.New("sphere: expected <pos> and <radius> elements")
	}

	mat, err := sphere.Material.material()
	if err != nil {
		return fmt.Errorf("sphere: %w", err)
	}
	s, err := scene.NewSphere(sphere.Pos.vec3(), sphere.Radius.R, mat)
	if err != nil {
		return err
	}
	r.objects = append(r.objects, scene.NewSphereObject(s))
	return nil
}

func (r *xmlSceneReader) addMesh(mesh *xmlMesh) error {
	if mesh.File == "" {
		return errors.New(`mesh: missing "file" attribute`)
	}

	mat, err := mesh.Material.material()
	if err != nil {
		return fmt.Errorf("mesh %q: %w", mesh.File, err)
	}

	res, err := asset.NewResource(mesh.File, r.sceneRes)
	if err != nil {
		return fmt.Errorf("mesh: %w", err)
	}
	defer res.Close()

	faces, err := newWavefrontReader().Read(res)
	if err != nil {
		return err
	}

	m, err := scene.NewMesh(faces, mat)
	if err != nil {
		return fmt.Errorf("mesh %q: %w", mesh.File, err)
	}
	r.objects = append(r.objects, scene.NewMeshObject(m))
	return nil
}

// Get the light color and intensity. Both elements are required.
func (l *xmlLight) emission() (types.Color, float64, error) {
	if l.Color == nil {
		return types.Color{}, 0, errors.New("missing <color>")
	}
	if l.Intensity == nil {
		return types.Color{}, 0, errors.New("missing <intensity>")
	}
	return l.Color.color(), l.Intensity.I, nil
}

// Convert to a scene material. The <color> and <specular> elements are
// required; reflectivity and roughness keep their default values when
// omitted.
func (m *xmlMaterial) material() (scene.Material, error) {
	mat := scene.DefaultMaterial()
	if m == nil {
		return mat, errors.New("missing <material>")
	}
	if m.Color == nil {
		return mat, errors.New("material: missing <color>")
	}
	if m.Specular == nil {
		return mat, errors.New("material: missing <specular>")
	}

	mat.Diffuse = m.Color.color()
	mat.Specular = m.Specular.color()
	if m.Reflectivity != nil {
		mat.Reflectivity = m.Reflectivity.R
	}
	if m.Roughness != nil {
		mat.Roughness = m.Roughness.R
	}
	return mat, nil
}

// Decode documents using a legacy single-byte encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1", "l1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}
