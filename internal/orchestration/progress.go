package orchestration

import (
	"time"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/format"
)

// ProgressAggregator turns sweep updates into a fraction and an ETA. Both
// CLI and TUI use it so the estimate is computed the same way.
type ProgressAggregator struct {
	eta   *format.ETATracker
	total int
}

// NewProgressAggregator creates an aggregator for a sweep of total block
// sizes. Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{
		eta:   format.NewETATracker(),
		total: total,
	}
}

// AggregatedProgress holds the result of processing a single update.
type AggregatedProgress struct {
	// Done is the number of block sizes measured so far.
	Done int
	// Fraction is Done over the sweep total, in [0, 1].
	Fraction float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
	// Record is the measurement carried by the update.
	Record benchmark.TimingRecord
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update benchmark.ProgressUpdate) AggregatedProgress {
	fraction := float64(update.Done) / float64(a.total)
	eta := a.eta.Update(fraction)
	return AggregatedProgress{
		Done:     update.Done,
		Fraction: a.eta.Fraction(),
		ETA:      eta,
		Record:   update.Record,
	}
}

// Fraction returns the current progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) Fraction() float64 {
	return a.eta.Fraction()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.eta.ETA()
}

// Total returns the number of block sizes in the sweep.
func (a *ProgressAggregator) Total() int {
	return a.total
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan benchmark.ProgressUpdate) {
	for range progressChan {
	}
}
