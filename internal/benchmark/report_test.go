package benchmark

import (
	"testing"
	"time"
)

func TestTimingRecord_Accessors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		rec            TimingRecord
		wantSeq, wantP float64
		wantSpeedup    float64
	}{
		{"twice as fast", TimingRecord{Sequential: 10 * time.Millisecond, Parallel: 5 * time.Millisecond}, 10, 5, 2},
		{"slower", TimingRecord{Sequential: 1500 * time.Microsecond, Parallel: 3 * time.Millisecond}, 1.5, 3, 0.5},
		{"unmeasurable parallel", TimingRecord{Sequential: time.Millisecond}, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.rec.SequentialMs(); got != tt.wantSeq {
				t.Errorf("SequentialMs() = %v, want %v", got, tt.wantSeq)
			}
			if got := tt.rec.ParallelMs(); got != tt.wantP {
				t.Errorf("ParallelMs() = %v, want %v", got, tt.wantP)
			}
			if got := tt.rec.Speedup(); got != tt.wantSpeedup {
				t.Errorf("Speedup() = %v, want %v", got, tt.wantSpeedup)
			}
		})
	}
}

func TestReport_Best(t *testing.T) {
	t.Parallel()

	empty := &Report{}
	if _, ok := empty.Best(); ok {
		t.Error("Best() on an empty report should report ok=false")
	}
	if !empty.Empty() {
		t.Error("Empty() should be true without records")
	}

	r := &Report{N: 8, Records: []TimingRecord{
		{BlockSize: 1, Sequential: 10, Parallel: 20},
		{BlockSize: 2, Sequential: 30, Parallel: 10},
		{BlockSize: 3, Sequential: 30, Parallel: 10},
		{BlockSize: 4, Sequential: 10, Parallel: 10},
	}}
	best, ok := r.Best()
	if !ok || best.BlockSize != 2 {
		t.Errorf("Best() = %+v, %v; want block size 2", best, ok)
	}
}

func TestReport_Slowdowns(t *testing.T) {
	t.Parallel()

	r := &Report{N: 8, Records: []TimingRecord{
		{BlockSize: 1, Sequential: 10, Parallel: 20}, // 64 blocks, slower
		{BlockSize: 2, Sequential: 10, Parallel: 5},  // 16 blocks, faster
		{BlockSize: 4, Sequential: 10, Parallel: 20}, // 4 blocks, below the margin
	}}
	got := r.Slowdowns(4)
	if len(got) != 1 || got[0].BlockSize != 1 {
		t.Errorf("Slowdowns(4) = %+v, want only block size 1", got)
	}
}
