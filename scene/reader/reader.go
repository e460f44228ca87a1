package reader

import (
	"fmt"

	"github.com/Oygron/raytracer/asset"
	"github.com/Oygron/raytracer/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource. Camera options are applied
	// after the camera settings defined by the scene.
	Read(res *asset.Resource, camOpts ...scene.CameraOption) (*scene.Scene, error)
}

// Read scene from a local file or URL.
func ReadScene(filename string, camOpts ...scene.CameraOption) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	switch res.Ext() {
	case ".xml":
		reader = newXmlReader()
	default:
		return nil, fmt.Errorf("reader: unsupported scene format %q", res.Ext())
	}
	return reader.Read(res, camOpts...)
}
