package tracer

import "math"

// The BlockScheduler interface is implemented by algorithms that split the
// samples of a pixel into blocks that can be evaluated concurrently.
type BlockScheduler interface {
	// Split spp samples into at most numBlocks blocks. The returned block
	// sizes always add up to spp and every block has at least one sample.
	Schedule(spp, numBlocks uint32) []uint32
}

// The naive scheduler assigns the same number of samples to each block.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

// Split samples evenly. In case the samples don't divide evenly the leftover
// samples are appended to the first blocks.
func (naiveScheduler) Schedule(spp, numBlocks uint32) []uint32 {
	if spp == 0 {
		return []uint32{}
	}
	if numBlocks == 0 {
		numBlocks = 1
	}
	if numBlocks > spp {
		numBlocks = spp
	}

	blocks := make([]uint32, numBlocks)
	base := spp / numBlocks
	for idx := range blocks {
		blocks[idx] = base
	}
	for idx := uint32(0); idx < spp-base*numBlocks; idx++ {
		blocks[idx]++
	}
	return blocks
}

// The minimum block scheduler avoids creating blocks that are too small to
// amortize the cost of scheduling them.
type minBlockScheduler struct {
	minBlockSize uint32
}

// Create a scheduler that never emits blocks with fewer than minBlockSize
// samples unless spp itself is smaller.
func MinBlockScheduler(minBlockSize uint32) BlockScheduler {
	if minBlockSize == 0 {
		minBlockSize = 1
	}
	return &minBlockScheduler{minBlockSize: minBlockSize}
}

// Split samples into blocks of at least minBlockSize samples.
func (sch *minBlockScheduler) Schedule(spp, numBlocks uint32) []uint32 {
	maxBlocks := uint32(math.Max(1.0, math.Floor(float64(spp)/float64(sch.minBlockSize))))
	if numBlocks > maxBlocks {
		numBlocks = maxBlocks
	}
	return naiveScheduler{}.Schedule(spp, numBlocks)
}
