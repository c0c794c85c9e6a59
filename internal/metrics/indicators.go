package metrics

import (
	"fmt"

	"github.com/agbru/matbench/internal/benchmark"
)

// Indicators summarizes a finished sweep.
type Indicators struct {
	BestBlockSize int
	BestSpeedup   float64
	MeanSpeedup   float64
	// Efficiency is BestSpeedup divided by the available CPUs.
	Efficiency float64
	// MulAddsPerSecond is n³ over the fastest parallel pass.
	MulAddsPerSecond float64
	// FasterSizes counts the block sizes where the parallel pass won.
	FasterSizes int
}

// ComputeIndicators derives Indicators from r. It returns nil for an empty
// report.
func ComputeIndicators(r *benchmark.Report, cpus int) *Indicators {
	best, ok := r.Best()
	if !ok {
		return nil
	}
	ind := &Indicators{BestBlockSize: best.BlockSize, BestSpeedup: best.Speedup()}
	var sum float64
	fastest := best.Parallel
	for _, rec := range r.Records {
		sum += rec.Speedup()
		if rec.Speedup() > 1 {
			ind.FasterSizes++
		}
		if rec.Parallel > 0 && (fastest <= 0 || rec.Parallel < fastest) {
			fastest = rec.Parallel
		}
	}
	ind.MeanSpeedup = sum / float64(len(r.Records))
	if cpus > 0 {
		ind.Efficiency = ind.BestSpeedup / float64(cpus)
	}
	if fastest > 0 {
		n := float64(r.N)
		ind.MulAddsPerSecond = n * n * n / fastest.Seconds()
	}
	return ind
}

// FormatRate renders an operations-per-second figure with an SI suffix.
func FormatRate(perSecond float64) string {
	switch {
	case perSecond >= 1e9:
		return fmt.Sprintf("%.2f G/s", perSecond/1e9)
	case perSecond >= 1e6:
		return fmt.Sprintf("%.2f M/s", perSecond/1e6)
	case perSecond >= 1e3:
		return fmt.Sprintf("%.2f K/s", perSecond/1e3)
	default:
		return fmt.Sprintf("%.0f /s", perSecond)
	}
}
