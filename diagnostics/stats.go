// Package diagnostics provides optional, read-only telemetry about a
// running segmentation: online mean/variance of the inside and outside
// intensity partitions, sampled once per outer iteration. It is never
// read by the engine itself -- wiring it in cannot change segmentation
// results, only what an operator can observe about them.
package diagnostics

import (
	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/floats"
)

// PartitionStats holds running mean/variance trackers for the inside and
// outside partitions of a segmentation in progress.
type PartitionStats struct {
	Inside, Outside stats.Stats
}

// NewPartitionStats returns a zeroed tracker pair.
func NewPartitionStats() *PartitionStats {
	return &PartitionStats{}
}

// Reset clears both trackers so they can be reused for the next
// iteration's sample.
func (p *PartitionStats) Reset() {
	p.Inside = stats.Stats{}
	p.Outside = stats.Stats{}
}

// Sample walks img under mask (true = inside) and updates the trackers.
// w and h are the raster's dimensions.
func (p *PartitionStats) Sample(w, h int, at func(x, y int) int, inside func(x, y int) bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(at(x, y))
			if inside(x, y) {
				p.Inside.Update(v)
			} else {
				p.Outside.Update(v)
			}
		}
	}
}

// Snapshot is a point-in-time summary suitable for structured logging.
type Snapshot struct {
	InsideMean, OutsideMean         float64
	InsideVariance, OutsideVariance float64
	InsideCount, OutsideCount       int64

	// Separation is the Euclidean distance between the two mean
	// intensities, a one-number proxy for how distinguishable the
	// partitions currently are.
	Separation float64
}

// Snapshot reports the current state of both trackers.
func (p *PartitionStats) Snapshot() Snapshot {
	insideMean := p.Inside.Mean()
	outsideMean := p.Outside.Mean()
	return Snapshot{
		InsideMean:      insideMean,
		OutsideMean:     outsideMean,
		InsideVariance:  p.Inside.PopulationVariance(),
		OutsideVariance: p.Outside.PopulationVariance(),
		InsideCount:     p.Inside.Count(),
		OutsideCount:    p.Outside.Count(),
		Separation:      floats.Distance([]float64{insideMean}, []float64{outsideMean}, 2),
	}
}
