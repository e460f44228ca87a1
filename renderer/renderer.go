package renderer

import (
	"time"

	"github.com/Oygron/raytracer/frame"
	"github.com/Oygron/raytracer/log"
	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/tracer"
)

var logger = log.New("renderer")

type Renderer interface {
	// Render a normalized frame.
	Render() (*frame.Frame, error)

	// Shutdown renderer and release any workers.
	Close()

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}

// Create a new renderer for the scene using the mode selected in opts.
func New(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	base := &baseRenderer{
		scene:   sc,
		tracer:  tracer.New(sc, opts.Visibility),
		options: opts,
	}

	switch opts.Mode {
	case WorkerPool:
		return newPoolRenderer(base), nil
	case Reduce:
		return newReduceRenderer(base), nil
	default:
		return newSequentialRenderer(base), nil
	}
}

// State shared by all render modes.
type baseRenderer struct {
	scene   *scene.Scene
	tracer  *tracer.Tracer
	options Options
	stats   FrameStats
}

func (r *baseRenderer) Stats() FrameStats {
	return r.stats
}

func (r *baseRenderer) newFrame() *frame.Frame {
	return frame.New(r.scene.Camera.Width(), r.scene.Camera.Height())
}

// Normalize the accumulated frame and record the frame stats.
func (r *baseRenderer) finish(f *frame.Frame, start time.Time, rayCountAtStart uint64, workerIds []string, workerSamples []uint64) (*frame.Frame, error) {
	r.stats = FrameStats{
		Mode:            r.options.Mode,
		FrameW:          f.Width,
		FrameH:          f.Height,
		SamplesPerPixel: r.options.SamplesPerPixel,
		Rays:            r.tracer.RayCount() - rayCountAtStart,
		Workers:         buildWorkerStats(workerIds, workerSamples),
		RenderTime:      time.Since(start),
	}

	if err := f.Normalize(); err != nil {
		return nil, err
	}

	logger.Infof("rendered %dx%d frame (%s, %d spp) in %s", f.Width, f.Height, r.options.Mode, r.options.SamplesPerPixel, r.stats.RenderTime)
	return f, nil
}
