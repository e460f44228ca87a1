package reader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/types"
)

const testScene = `<?xml version="1.0" encoding="UTF-8"?>
<scene>
	<camera>
		<pos x="0" y="0" z="0"/>
		<dir x="1" y="0" z="0"/>
		<resolution width="320" height="200"/>
		<fov deg="60"/>
	</camera>
	<ambiant_light>
		<color r="0.6" g="0.8" b="1"/>
		<intensity i="0.3"/>
	</ambiant_light>
	<point_light>
		<pos x="0" y="0" z="10"/>
		<color r="1" g="1" b="1"/>
		<intensity i="50"/>
	</point_light>
	<sphere>
		<pos x="5" y="0" z="0"/>
		<radius r="1"/>
		<material>
			<color r="2.8" g="-0.5" b="0.1"/>
			<specular r="1" g="1" b="1"/>
			<reflectivity r="0.5"/>
			<roughness r="0.25"/>
		</material>
	</sphere>
	<sphere>
		<pos x="10" y="0" z="0"/>
		<radius r="2"/>
		<material>
			<color r="0" g="0" b="1"/>
			<specular r="0.2" g="0.2" b="0.2"/>
		</material>
	</sphere>
	<lens_flare/>
</scene>`

func readTestScene(t *testing.T, payload string, opts ...scene.CameraOption) (*scene.Scene, error) {
	t.Helper()
	return newXmlReader().Read(mockResource("scene.xml", payload), opts...)
}

func TestReadScene(t *testing.T) {
	sc, err := readTestScene(t, testScene)
	if err != nil {
		t.Fatal(err)
	}

	if sc.Camera.Width() != 320 || sc.Camera.Height() != 200 || sc.Camera.FOV() != 60 {
		t.Fatalf("unexpected camera settings %dx%d fov %v", sc.Camera.Width(), sc.Camera.Height(), sc.Camera.FOV())
	}
	if sc.Ambient.Color != types.RGB(0.6, 0.8, 1) || sc.Ambient.Intensity != 0.3 {
		t.Fatalf("unexpected ambient light %+v", sc.Ambient)
	}
	if len(sc.Lights) != 1 || sc.Lights[0].Position != types.XYZ(0, 0, 10) || sc.Lights[0].Intensity != 50 {
		t.Fatalf("unexpected lights %+v", sc.Lights)
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("expected 2 objects; got %d", len(sc.Objects))
	}

	mat := sc.Objects[0].Material()
	if mat.Diffuse != types.RGB(1, 0, 0.1) {
		t.Fatalf("expected diffuse color to be clamped to (1, 0, 0.1); got %v", mat.Diffuse)
	}
	if mat.Specular != types.RGB(1, 1, 1) || mat.Reflectivity != 0.5 || mat.Roughness != 0.25 {
		t.Fatalf("unexpected material %+v", mat)
	}

	expMat := scene.DefaultMaterial()
	expMat.Diffuse = types.RGB(0, 0, 1)
	expMat.Specular = types.RGB(0.2, 0.2, 0.2)
	if got := sc.Objects[1].Material(); got != expMat {
		t.Fatalf("expected reflectivity and roughness defaults in %+v; got %+v", expMat, got)
	}
	if sc.Objects[1].Sphere().Radius != 2 {
		t.Fatalf("expected second sphere radius to be 2; got %v", sc.Objects[1].Sphere().Radius)
	}
}

func TestReadSceneCameraOverrides(t *testing.T) {
	sc, err := readTestScene(t, testScene, scene.WithResolution(16, 8))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Camera.Width() != 16 || sc.Camera.Height() != 8 {
		t.Fatalf("expected 16x8 camera; got %dx%d", sc.Camera.Width(), sc.Camera.Height())
	}
	if sc.Camera.FOV() != 60 {
		t.Fatalf("expected fov to be kept; got %v", sc.Camera.FOV())
	}
}

func TestReadSceneDefaults(t *testing.T) {
	payload := `<scene>
	<camera><pos x="1" y="2" z="3"/><dir x="0" y="1" z="0"/></camera>
	<ambient_light><color r="1" g="1" b="1"/><intensity i="1"/></ambient_light>
</scene>`

	sc, err := readTestScene(t, payload)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Camera.Width() != scene.DefaultCameraWidth || sc.Camera.Height() != scene.DefaultCameraHeight {
		t.Fatalf("expected default resolution; got %dx%d", sc.Camera.Width(), sc.Camera.Height())
	}
	if sc.Camera.Position() != types.XYZ(1, 2, 3) {
		t.Fatalf("unexpected camera position %v", sc.Camera.Position())
	}
	if len(sc.Objects) != 0 || len(sc.Lights) != 0 {
		t.Fatal("expected an empty scene")
	}
}

func TestReadSceneErrors(t *testing.T) {
	camera := `<camera><pos x="0" y="0" z="0"/><dir x="1" y="0" z="0"/></camera>`
	ambient := `<ambiant_light><color r="1" g="1" b="1"/><intensity i="1"/></ambiant_light>`

	type spec struct {
		payload  string
		expErr   error
		expMatch string
	}

	material := `<material><color r="1" g="1" b="1"/><specular r="1" g="1" b="1"/></material>`
	pos := `<pos x="0" y="0" z="0"/>`

	specs := []spec{
		{"<scene>" + ambient + "</scene>", ErrMissingCamera, ""},
		{"<scene>" + camera + "</scene>", ErrMissingAmbient, ""},
		{`<scene><camera><pos x="0" y="0" z="0"/></camera>` + ambient + "</scene>", ErrMissingCamera, ""},
		{`<scene><camera><pos x="0" y="0" z="0"/><dir x="0" y="0" z="0"/></camera>` + ambient + "</scene>", types.ErrDegenerateVector, ""},
		{"<scene>" + camera + ambient + `<sphere><pos x="0" y="0" z="0"/><radius r="-1"/>` + material + `</sphere></scene>`, nil, "radius"},
		{"<scene>" + camera + ambient + `<sphere><pos x="abc" y="0" z="0"/><radius r="1"/>` + material + `</sphere></scene>`, nil, "abc"},
		{"<scene>" + camera + ambient + `<sphere><radius r="1"/></sphere></scene>`, nil, "expected <pos> and <radius>"},
		{"<scene>" + camera + ambient + `<sphere><pos x="0" y="0" z="0"/><radius r="1"/><material><color r="1" g="1" b="1"/><specular r="1" g="1" b="1"/><reflectivity r="2"/></material></sphere></scene>`, nil, "reflectivity"},
		{"<scene>" + camera + ambient + "<sphere>" + pos + `<radius r="1"/></sphere></scene>`, nil, "sphere: missing <material>"},
		{"<scene>" + camera + ambient + "<sphere>" + pos + `<radius r="1"/><material><specular r="1" g="1" b="1"/></material></sphere></scene>`, nil, "material: missing <color>"},
		{"<scene>" + camera + ambient + "<sphere>" + pos + `<radius r="1"/><material><color r="1" g="1" b="1"/></material></sphere></scene>`, nil, "material: missing <specular>"},
		{"<scene>" + camera + ambient + `<mesh file="quad.obj"/></scene>`, nil, "missing <material>"},
		{"<scene>" + camera + `<ambiant_light/></scene>`, nil, "ambient_light: missing <color>"},
		{"<scene>" + camera + `<ambiant_light><color r="1" g="1" b="1"/></ambiant_light></scene>`, nil, "ambient_light: missing <intensity>"},
		{"<scene>" + camera + ambient + "<point_light>" + pos + `</point_light></scene>`, nil, "point_light: missing <color>"},
		{"<scene>" + camera + ambient + "<point_light>" + pos + `<color r="1" g="1" b="1"/></point_light></scene>`, nil, "point_light: missing <intensity>"},
		{"<scene>" + camera + ambient + `<point_light><color r="1" g="1" b="1"/></point_light></scene>`, nil, "missing <pos>"},
		{"<scene>" + camera + ambient + `<mesh/></scene>`, nil, `missing "file"`},
		{"<scene>" + camera + ambient, nil, "unexpected EOF"},
	}

	for specIndex, s := range specs {
		_, err := readTestScene(t, s.payload)
		if err == nil {
			t.Fatalf("[spec %d] expected an error", specIndex)
		}
		if s.expErr != nil && !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error to wrap %v; got %v", specIndex, s.expErr, err)
		}
		if s.expMatch != "" && !strings.Contains(err.Error(), s.expMatch) {
			t.Fatalf("[spec %d] expected error to contain %q; got %v", specIndex, s.expMatch, err)
		}
	}
}

func TestReadLatin1Scene(t *testing.T) {
	// 0xe9 is 'é' in ISO-8859-1 and is not valid UTF-8 on its own.
	payload := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<!-- sc\xe8ne d'\xe9t\xe9 -->\n<scene>" +
		`<camera><pos x="0" y="0" z="0"/><dir x="1" y="0" z="0"/></camera>` +
		`<ambiant_light><color r="1" g="0.5" b="0"/><intensity i="2"/></ambiant_light>` +
		"</scene>"

	sc, err := readTestScene(t, payload)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Ambient.Radiance() != types.RGB(2, 1, 0) {
		t.Fatalf("expected ambient radiance (2, 1, 0); got %v", sc.Ambient.Radiance())
	}

	payload = strings.Replace(payload, "ISO-8859-1", "KOI8-R", 1)
	if _, err = readTestScene(t, payload); err == nil || !strings.Contains(err.Error(), "unsupported charset") {
		t.Fatalf("expected unsupported charset error; got %v", err)
	}
}

func TestReadSceneWithMesh(t *testing.T) {
	dir, err := os.MkdirTemp("", "reader-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	obj := "v 4 -1 -1\nv 4 1 -1\nv 4 1 1\nv 4 -1 1\nf 1 2 3 4\n"
	if err = os.MkdirAll(filepath.Join(dir, "meshes"), 0755); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(filepath.Join(dir, "meshes", "quad.obj"), []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}

	payload := `<scene>
	<camera><pos x="0" y="0" z="0"/><dir x="1" y="0" z="0"/><resolution width="4" height="4"/></camera>
	<ambient_light><color r="1" g="1" b="1"/><intensity i="1"/></ambient_light>
	<sphere><pos x="10" y="0" z="0"/><radius r="1"/><material><color r="1" g="1" b="1"/><specular r="0" g="0" b="0"/></material></sphere>
	<mesh file="meshes/quad.obj">
		<material><color r="0" g="1" b="0"/><specular r="0" g="0" b="0"/></material>
	</mesh>
</scene>`
	scenePath := filepath.Join(dir, "scene.xml")
	if err = os.WriteFile(scenePath, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := ReadScene(scenePath)
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.Objects) != 2 {
		t.Fatalf("expected 2 objects; got %d", len(sc.Objects))
	}
	if sc.Objects[0].Type != scene.SphereObject || sc.Objects[1].Type != scene.MeshObject {
		t.Fatalf("expected objects in document order; got %s, %s", sc.Objects[0].Type, sc.Objects[1].Type)
	}

	mesh := sc.Objects[1].Mesh()
	if len(mesh.Faces) != 2 {
		t.Fatalf("expected 2 faces; got %d", len(mesh.Faces))
	}
	if mesh.Material.Diffuse != types.RGB(0, 1, 0) {
		t.Fatalf("expected mesh material to be green; got %v", mesh.Material.Diffuse)
	}
	if sc.FaceCount() != 2 {
		t.Fatalf("expected face count 2; got %d", sc.FaceCount())
	}

	// Missing mesh file
	payload = strings.Replace(payload, "meshes/quad.obj", "meshes/missing.obj", 1)
	os.WriteFile(scenePath, []byte(payload), 0644)
	if _, err = ReadScene(scenePath); err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error; got %v", err)
	}
}

func TestReadSceneUnsupportedFormat(t *testing.T) {
	dir, err := os.MkdirTemp("", "reader-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "scene.json")
	os.WriteFile(path, []byte("{}"), 0644)

	if _, err = ReadScene(path); err == nil || !strings.Contains(err.Error(), "unsupported scene format") {
		t.Fatalf("expected unsupported format error; got %v", err)
	}
}
