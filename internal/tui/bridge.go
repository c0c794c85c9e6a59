package tui

import (
	"io"
	"runtime"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/matbench/internal/benchmark"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/metrics"
	"github.com/agbru/matbench/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies
// the model on every Update, so the sweep goroutine needs a pointer that
// survives the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by turning
// sweep updates into ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards every update and a final ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		p := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Done:       p.Done,
			Total:      total,
			Fraction:   p.Fraction,
			ETA:        p.ETA,
			Record:     p.Record,
			Generation: t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler by sending messages instead of writing.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentReport sends the finished report.
func (t *TUIResultPresenter) PresentReport(report *benchmark.Report, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ReportMsg{Report: report, Generation: t.generation})
}

// PresentSummary sends the indicators derived from report.
func (t *TUIResultPresenter) PresentSummary(report *benchmark.Report, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(IndicatorsMsg{
		Indicators: metrics.ComputeIndicators(report, runtime.NumCPU()),
		Generation: t.generation,
	})
}

// HandleError sends err to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Generation: t.generation})
	return apperrors.ExitCodeFor(err)
}
