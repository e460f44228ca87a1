package renderer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Oygron/raytracer/tracer"
)

// The strategy used for distributing samples across goroutines.
type Mode uint8

const (
	// Trace every sample on the calling goroutine.
	Sequential Mode = iota

	// Fan samples out to a fixed set of workers, each owning its own rng.
	WorkerPool

	// Split the samples of each pixel into blocks, trace them in parallel
	// and combine the partial sums.
	Reduce
)

var modeNames = map[Mode]string{
	Sequential: "sequential",
	WorkerPool: "pool",
	Reduce:     "reduce",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Parse a mode from its name. Matching is case-insensitive.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for mode, modeName := range modeNames {
		if modeName == name {
			return mode, nil
		}
	}

	switch name {
	case "none", "no":
		return Sequential, nil
	case "basic", "worker-pool", "workers":
		return WorkerPool, nil
	case "rayon", "data-parallel":
		return Reduce, nil
	}
	return Sequential, fmt.Errorf("%w %q", ErrUnknownMode, name)
}

type Options struct {
	// Sample distribution strategy.
	Mode Mode

	// Number of indirect bounces.
	NumBounces uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Number of workers for the parallel modes.
	NumWorkers uint32

	// Smallest number of samples assigned to a reduce block. Values
	// below 2 let every worker receive a block.
	MinBlockSize uint32

	// Seed for the random streams used by the tracer.
	Seed int64

	// Interpretation of shadow rays that hit nothing.
	Visibility tracer.VisibilityPolicy
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		Mode:            Sequential,
		NumBounces:      tracer.DefaultMaxBounces,
		SamplesPerPixel: 16,
		NumWorkers:      uint32(runtime.NumCPU()),
		Seed:            1,
		Visibility:      tracer.RequireShadowHit,
	}
}

func (o Options) validate() error {
	if o.SamplesPerPixel == 0 {
		return ErrInvalidSampleCount
	}
	if o.Mode != Sequential && o.NumWorkers == 0 {
		return ErrInvalidWorkerCount
	}
	if _, ok := modeNames[o.Mode]; !ok {
		return fmt.Errorf("%w %s", ErrUnknownMode, o.Mode)
	}
	return nil
}
