package benchmark

import (
	"time"

	"github.com/agbru/matbench/internal/blockmul"
)

// TimingRecord holds the measured durations for one block size.
type TimingRecord struct {
	// BlockSize is the edge length r of the blocks.
	BlockSize int
	// Blocks is the block count shown in the report. It is ⌈n/r⌉² unless the
	// legacy display formula was requested.
	Blocks int
	// Sequential and Parallel are the wall-clock durations of the two
	// strategies (the minimum over all repetitions).
	Sequential time.Duration
	Parallel   time.Duration
}

// SequentialMs returns the sequential duration in milliseconds.
func (r TimingRecord) SequentialMs() float64 {
	return float64(r.Sequential) / float64(time.Millisecond)
}

// ParallelMs returns the parallel duration in milliseconds.
func (r TimingRecord) ParallelMs() float64 {
	return float64(r.Parallel) / float64(time.Millisecond)
}

// Speedup returns Sequential/Parallel, or 0 when the parallel duration was
// not measurable.
func (r TimingRecord) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// Report is the outcome of one sweep. Records are ordered by BlockSize and
// must not be modified once the sweep returned.
type Report struct {
	N        int
	Seed     uint64
	MinBlock int
	MaxBlock int
	Repeat   int
	// Verified is set when every pass was compared against the unblocked
	// reference product.
	Verified bool
	// LegacyBlockCount is set when Blocks holds ⌈n/r⌉·n instead of ⌈n/r⌉².
	LegacyBlockCount bool
	Records          []TimingRecord
	StartedAt        time.Time
	Elapsed          time.Duration
}

// Empty reports whether the sweep had no block size to measure.
func (r *Report) Empty() bool { return len(r.Records) == 0 }

// Best returns the record with the highest speedup. ok is false for an empty
// report. Ties go to the smaller block size.
func (r *Report) Best() (best TimingRecord, ok bool) {
	for i, rec := range r.Records {
		if i == 0 || rec.Speedup() > best.Speedup() {
			best = rec
		}
	}
	return best, len(r.Records) > 0
}

// Slowdowns returns the records whose parallel pass was slower than the
// sequential one although the true block count exceeded capacity by a factor
// of at least four. Such records are expected to be rare; they are reported
// for information only.
func (r *Report) Slowdowns(capacity int) []TimingRecord {
	var out []TimingRecord
	for _, rec := range r.Records {
		if blockmul.Count(r.N, rec.BlockSize) >= 4*capacity && rec.Parallel > rec.Sequential {
			out = append(out, rec)
		}
	}
	return out
}
