package tui

import (
	"time"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/metrics"
)

// ProgressMsg is sent after each measured block size.
type ProgressMsg struct {
	Done     int
	Total    int
	Fraction float64
	ETA      time.Duration
	Record   benchmark.TimingRecord
	// Generation identifies the sweep that produced the message.
	Generation uint64
}

// ProgressDoneMsg is sent when the progress channel closes.
type ProgressDoneMsg struct{ Generation uint64 }

// ReportMsg carries the finished report.
type ReportMsg struct {
	Report     *benchmark.Report
	Generation uint64
}

// IndicatorsMsg carries the indicators derived from the finished report.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
	Generation uint64
}

// ErrorMsg reports a failed sweep.
type ErrorMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// SweepCompleteMsg is sent when the sweep goroutine returns. Generation
// identifies the run so results of a reset sweep are ignored.
type SweepCompleteMsg struct {
	ExitCode   int
	Report     *benchmark.Report
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
