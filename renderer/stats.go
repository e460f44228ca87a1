package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id string

	// Number of samples traced by this worker and the percentage of the
	// total frame samples it represents.
	Samples      uint64
	FramePercent float32
}

type FrameStats struct {
	Mode Mode

	// Frame dims.
	FrameW uint32
	FrameH uint32

	SamplesPerPixel uint32

	// Number of rays traced for the frame, including shadow rays.
	Rays uint64

	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

func buildWorkerStats(ids []string, samples []uint64) []WorkerStat {
	var total uint64
	for _, s := range samples {
		total += s
	}

	stats := make([]WorkerStat, len(ids))
	for idx, id := range ids {
		stats[idx] = WorkerStat{Id: id, Samples: samples[idx]}
		if total > 0 {
			stats[idx].FramePercent = 100.0 * float32(samples[idx]) / float32(total)
		}
	}
	return stats
}
