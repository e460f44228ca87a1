package renderer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Oygron/raytracer/frame"
	"github.com/Oygron/raytracer/tracer"
	"github.com/Oygron/raytracer/types"
	"golang.org/x/sync/errgroup"
)

// A renderer that splits the samples of each pixel into blocks and traces the
// blocks in parallel. Samples are accumulated in sample order so the result
// rounds exactly like the sequential renderer.
type reduceRenderer struct {
	*baseRenderer

	scheduler tracer.BlockScheduler
}

func newReduceRenderer(base *baseRenderer) *reduceRenderer {
	scheduler := tracer.NaiveScheduler()
	if base.options.MinBlockSize > 1 {
		scheduler = tracer.MinBlockScheduler(base.options.MinBlockSize)
	}
	return &reduceRenderer{
		baseRenderer: base,
		scheduler:    scheduler,
	}
}

func (r *reduceRenderer) Render() (*frame.Frame, error) {
	start := time.Now()
	rayCount := r.tracer.RayCount()

	f := r.newFrame()
	blocks := r.scheduler.Schedule(r.options.SamplesPerPixel, r.options.NumWorkers)
	blockSamples := make([]uint64, len(blocks))
	offsets := blockOffsets(blocks)
	samples := make([]types.Color, r.options.SamplesPerPixel)

	logger.Debugf("tracing %dx%d frame using %d blocks per pixel: %v", f.Width, f.Height, len(blocks), blocks)

	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			pixel := uint64(row)*uint64(f.Width) + uint64(col)

			var g errgroup.Group
			g.SetLimit(int(r.options.NumWorkers))
			for blockIndex, blockSize := range blocks {
				blockIndex, blockSize := blockIndex, blockSize
				g.Go(func() error {
					rng := rand.New(rand.NewSource(blockSeed(r.options.Seed, pixel, uint64(blockIndex))))

					out := samples[offsets[blockIndex] : offsets[blockIndex]+blockSize]
					for s := range out {
						c, err := r.tracer.Sample(col, row, r.options.NumBounces, rng)
						if err != nil {
							return err
						}
						out[s] = c
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}

			f.Set(col, row, accumulate(samples))
			for blockIndex, blockSize := range blocks {
				blockSamples[blockIndex] += uint64(blockSize)
			}
		}
	}

	ids := make([]string, len(blocks))
	for idx := range ids {
		ids[idx] = fmt.Sprintf("block-%d", idx)
	}

	return r.finish(f, start, rayCount, ids, blockSamples)
}

func (r *reduceRenderer) Close() {}

// Get the index of the first sample of each block.
func blockOffsets(blocks []uint32) []uint32 {
	offsets := make([]uint32, len(blocks))
	var next uint32
	for idx, size := range blocks {
		offsets[idx] = next
		next += size
	}
	return offsets
}

// Sum samples left to right.
func accumulate(samples []types.Color) types.Color {
	var sum types.Color
	for _, c := range samples {
		sum = sum.Add(c)
	}
	return sum
}

// Derive the seed of a block random stream from the frame seed, the pixel
// index and the block index using the splitmix64 finalizer.
func blockSeed(seed int64, pixel, block uint64) int64 {
	z := uint64(seed) + 0x9e3779b97f4a7c15*(pixel+1) + 0xbf58476d1ce4e5b9*(block+1)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
