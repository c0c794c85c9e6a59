package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/ui"
)

// MockSpinner records the calls DisplayProgress makes.
type MockSpinner struct {
	started  bool
	stopped  bool
	suffix   string
	suffixes []string
}

func (m *MockSpinner) Start() { m.started = true }

func (m *MockSpinner) Stop() { m.stopped = true }

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
	m.suffixes = append(m.suffixes, suffix)
}

func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	mockS := &MockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mockS }
	return mockS
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	if s.Suffix != " test" {
		t.Errorf("suffix not forwarded, got %q", s.Suffix)
	}
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetCurrentTheme(ui.NoColorTheme)
	mockS := withMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan benchmark.ProgressUpdate)
	go func() {
		for r := 1; r <= 3; r++ {
			progressChan <- benchmark.ProgressUpdate{Done: r, Total: 3, Record: benchmark.TimingRecord{BlockSize: r}}
		}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 3, io.Discard)
	wg.Wait()

	if !mockS.started || !mockS.stopped {
		t.Fatalf("spinner should have started and stopped (started=%v stopped=%v)", mockS.started, mockS.stopped)
	}
	if !strings.Contains(mockS.suffix, "r=3 (3/3)") || !strings.Contains(mockS.suffix, "100.0%") {
		t.Errorf("final suffix should show completion, got %q", mockS.suffix)
	}
	var sawStart bool
	for _, s := range mockS.suffixes {
		if strings.Contains(s, "starting (0/3)") {
			sawStart = true
		}
	}
	if !sawStart {
		t.Error("initial suffix should announce the sweep start")
	}
}

func TestDisplayProgress_EmptySweep(t *testing.T) {
	mockS := withMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan benchmark.ProgressUpdate, 1)
	progressChan <- benchmark.ProgressUpdate{}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()

	if mockS.started {
		t.Error("spinner should not start for an empty sweep")
	}
	if len(progressChan) != 0 {
		t.Error("channel should have been drained")
	}
}

func TestCLIProgressReporter(t *testing.T) {
	withMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan benchmark.ProgressUpdate)
	close(progressChan)

	CLIProgressReporter{}.DisplayProgress(&wg, progressChan, 2, io.Discard)
	wg.Wait()
}
