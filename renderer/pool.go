package renderer

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Oygron/raytracer/frame"
	"github.com/Oygron/raytracer/types"
)

// A request to trace a single sample for a pixel.
type sampleRequest struct {
	col, row uint32

	// The channel where the worker posts the traced sample.
	resChan chan<- sampleResult
}

type sampleResult struct {
	color types.Color
	err   error
}

// A pool worker. Each worker owns a private random stream.
type poolWorker struct {
	id      int
	rng     *rand.Rand
	samples uint64
}

// A renderer that fans the samples of each pixel out to a fixed set of
// long-lived workers and sums the results as they arrive.
type poolRenderer struct {
	*baseRenderer

	reqChan chan sampleRequest
	workers []*poolWorker
	wg      sync.WaitGroup

	closeOnce sync.Once
	closed    atomic.Bool
}

func newPoolRenderer(base *baseRenderer) *poolRenderer {
	r := &poolRenderer{
		baseRenderer: base,
		reqChan:      make(chan sampleRequest),
		workers:      make([]*poolWorker, base.options.NumWorkers),
	}

	for idx := range r.workers {
		w := &poolWorker{
			id:  idx,
			rng: rand.New(rand.NewSource(base.options.Seed + int64(idx))),
		}
		r.workers[idx] = w
		r.wg.Add(1)
		go r.run(w)
	}
	logger.Debugf("started %d pool workers", len(r.workers))

	return r
}

// The worker loop. It exits when the request channel is closed.
func (r *poolRenderer) run(w *poolWorker) {
	defer r.wg.Done()

	for req := range r.reqChan {
		c, err := r.tracer.Sample(req.col, req.row, r.options.NumBounces, w.rng)
		w.samples++
		req.resChan <- sampleResult{color: c, err: err}
	}
}

func (r *poolRenderer) Render() (*frame.Frame, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()
	rayCount := r.tracer.RayCount()
	samplesAtStart := make([]uint64, len(r.workers))
	for idx, w := range r.workers {
		samplesAtStart[idx] = w.samples
	}

	f := r.newFrame()
	resChan := make(chan sampleResult)
	spp := r.options.SamplesPerPixel

	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			go func(col, row uint32) {
				for s := uint32(0); s < spp; s++ {
					r.reqChan <- sampleRequest{col: col, row: row, resChan: resChan}
				}
			}(col, row)

			var sum types.Color
			var firstErr error
			for s := uint32(0); s < spp; s++ {
				res := <-resChan
				if res.err != nil && firstErr == nil {
					firstErr = res.err
				}
				sum = sum.Add(res.color)
			}
			if firstErr != nil {
				return nil, firstErr
			}
			f.Set(col, row, sum)
		}
	}

	ids := make([]string, len(r.workers))
	samples := make([]uint64, len(r.workers))
	for idx, w := range r.workers {
		ids[idx] = fmt.Sprintf("worker-%d", w.id)
		samples[idx] = w.samples - samplesAtStart[idx]
	}

	return r.finish(f, start, rayCount, ids, samples)
}

// Stop the workers and wait for them to exit.
func (r *poolRenderer) Close() {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		close(r.reqChan)
		r.wg.Wait()
		logger.Debugf("stopped %d pool workers", len(r.workers))
	})
}
