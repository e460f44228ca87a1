package renderer

import (
	"math/rand"
	"time"

	"github.com/Oygron/raytracer/frame"
	"github.com/Oygron/raytracer/types"
)

// A renderer that traces every sample on the calling goroutine.
type sequentialRenderer struct {
	*baseRenderer
}

func newSequentialRenderer(base *baseRenderer) *sequentialRenderer {
	return &sequentialRenderer{baseRenderer: base}
}

func (r *sequentialRenderer) Render() (*frame.Frame, error) {
	start := time.Now()
	rayCount := r.tracer.RayCount()
	rng := rand.New(rand.NewSource(r.options.Seed))

	f := r.newFrame()
	logger.Debugf("tracing %dx%d frame sequentially", f.Width, f.Height)

	var samples uint64
	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			var sum types.Color
			for s := uint32(0); s < r.options.SamplesPerPixel; s++ {
				c, err := r.tracer.Sample(col, row, r.options.NumBounces, rng)
				if err != nil {
					return nil, err
				}
				sum = sum.Add(c)
			}
			f.Set(col, row, sum)
			samples += uint64(r.options.SamplesPerPixel)
		}
	}

	return r.finish(f, start, rayCount, []string{"main"}, []uint64{samples})
}

func (r *sequentialRenderer) Close() {}
