package renderer

import "errors"

var (
	ErrSceneNotDefined    = errors.New("renderer: no scene defined")
	ErrCameraNotDefined   = errors.New("renderer: no camera defined")
	ErrInvalidSampleCount = errors.New("renderer: samples per pixel must be > 0")
	ErrInvalidWorkerCount = errors.New("renderer: worker count must be > 0")
	ErrUnknownMode        = errors.New("renderer: unknown render mode")
	ErrClosed             = errors.New("renderer: renderer is closed")
)
