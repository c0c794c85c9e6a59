package tui

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/matbench/internal/benchmark"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/orchestration"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}} // nil program: Send is a no-op

	ch := make(chan benchmark.ProgressUpdate, 10)
	for r := 1; r <= 4; r++ {
		ch <- benchmark.ProgressUpdate{Done: r, Total: 4, Record: benchmark.TimingRecord{BlockSize: r}}
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 4, nil)
	wg.Wait()

	if len(ch) != 0 {
		t.Errorf("expected drained channel, %d updates left", len(ch))
	}
}

func TestTUIProgressReporter_EmptySweep(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan benchmark.ProgressUpdate, 1)
	ch <- benchmark.ProgressUpdate{}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
		{"mismatch", apperrors.VerificationError{BlockSize: 1, Strategy: "parallel"}, apperrors.ExitErrorMismatch},
		{"launch", apperrors.TaskLaunchError{Row: 0, Col: 0, Cause: apperrors.ErrTaskLimit}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presenter.HandleError(tt.err, nil); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTUIResultPresenter_PresentNoProgram(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	report := &benchmark.Report{N: 3, Records: []benchmark.TimingRecord{{BlockSize: 1, Sequential: time.Millisecond, Parallel: time.Millisecond}}}
	// Must not block or panic without a program.
	presenter.PresentReport(report, orchestration.PresentationOptions{}, nil)
	presenter.PresentSummary(report, orchestration.PresentationOptions{}, nil)
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressDoneMsg{})
}
