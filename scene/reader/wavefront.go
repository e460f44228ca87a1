package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Oygron/raytracer/asset"
	"github.com/Oygron/raytracer/log"
	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/types"
)

// Reads triangle faces from wavefront obj files. Only geometry is used;
// groups, materials and smoothing statements are ignored.
type wavefrontMeshReader struct {
	logger log.Logger

	// The parsed faces.
	faces []scene.Face

	// List of vertices. Normal and uv coords are only counted so face
	// indices can be validated.
	vertexList  []types.Vec3
	normalCount int
	uvCount     int

	// Number of polygons dropped because they had no area.
	degenerate int
}

// Create a new obj mesh reader.
func newWavefrontReader() *wavefrontMeshReader {
	return &wavefrontMeshReader{
		logger:     log.New("wavefront mesh reader"),
		faces:      make([]scene.Face, 0),
		vertexList: make([]types.Vec3, 0),
	}
}

// Read mesh faces.
func (r *wavefrontMeshReader) Read(res *asset.Resource) ([]scene.Face, error) {
	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	if r.degenerate > 0 {
		r.logger.Warningf(`dropped %d degenerate polygons from "%s"`, r.degenerate, res.Path())
	}
	r.logger.Infof("parsed %d faces in %d ms", len(r.faces), time.Since(start).Nanoseconds()/1e6)

	return r.faces, nil
}

// Generate an error message that includes the file and line number.
func (r *wavefrontMeshReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf("[%s: %d] error: %s", file, line, msg)
}

// Parse wavefront object format.
func (r *wavefrontMeshReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			if _, err := parseVec3(lineTokens); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.normalCount++
		case "vt":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for 'vt'; expected at least 1 argument; got 0")
			}
			r.uvCount++
		case "f":
			faces, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.faces = append(r.faces, faces...)
		}
	}

	return scanner.Err()
}

// Parse a face definition. Each argument has the form v, v/vt, v//vn or
// v/vt/vn. Polygons with more than 3 vertices are split into a triangle fan
// around the first vertex. Triangles with no area are dropped.
func (r *wavefrontMeshReader) parseFace(lineTokens []string) ([]scene.Face, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, len(lineTokens)-1)
	expIndices := 0
	for arg := 0; arg < len(vertices); arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
			if expIndices > 3 {
				return nil, fmt.Errorf("face argument 0 contains %d indices; expected at most 3", expIndices)
			}
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]

		if expIndices > 1 && vTokens[1] != "" {
			if _, err = selectFaceCoordIndex(vTokens[1], r.uvCount); err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
		}

		if expIndices > 2 && vTokens[2] != "" {
			if _, err = selectFaceCoordIndex(vTokens[2], r.normalCount); err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
		}
	}

	faces := make([]scene.Face, 0, len(vertices)-2)
	for idx := 1; idx < len(vertices)-1; idx++ {
		face, err := scene.NewFace(vertices[0], vertices[idx], vertices[idx+1])
		if err != nil {
			r.degenerate++
			continue
		}
		faces = append(faces, face)
	}

	return faces, nil
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = int(index - 1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return types.Vec3{}, err
		}
		coords[tokIdx-1] = coord
	}
	return types.XYZ(coords[0], coords[1], coords[2]), nil
}
