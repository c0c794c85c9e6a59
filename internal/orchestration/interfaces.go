package orchestration

import (
	"io"
	"sync"

	"github.com/agbru/matbench/internal/benchmark"
)

// PresentationOptions configures how a report is presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying sweep progress.
// This interface decouples the orchestration layer from the presentation
// layer.
//
// Implementations handle the visual representation of progress (spinners,
// dashboards) while the orchestration layer drives the sweep.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per measured block size.
	//   - total: The number of block sizes the sweep will measure.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting a finished report.
// Implementations choose the output format (table, TUI) without the
// orchestration logic having to know about it.
type ResultPresenter interface {
	// PresentReport displays one line per measured block size.
	PresentReport(report *benchmark.Report, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the best speedup and the run parameters.
	PresentSummary(report *benchmark.Report, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles benchmark errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
