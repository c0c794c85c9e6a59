package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/format"
	"github.com/agbru/matbench/internal/orchestration"
	"github.com/agbru/matbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep both in step.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with a progress bar and an ETA while a
// sweep runs. It returns once progressChan is closed and signals wg.
//
// Parameters:
//   - wg: The WaitGroup to signal on return.
//   - progressChan: Channel receiving one update per measured block size.
//   - total: The number of block sizes in the sweep.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(progressSuffix(0, total, 0, agg.GetETA()))
	s.Start()
	defer func() {
		s.Stop()
		fmt.Fprintln(out)
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	done, lastBlock := 0, 0
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(progressSuffix(total, total, lastBlock, 0))
				return
			}
			p := agg.Update(update)
			done, lastBlock = p.Done, p.Record.BlockSize
			s.UpdateSuffix(progressSuffix(done, total, lastBlock, p.ETA))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(done, total, lastBlock, agg.GetETA()))
		}
	}
}

// progressSuffix renders " r=12 (3/19) [bar] 15.8% ETA: 2s".
func progressSuffix(done, total, blockSize int, eta time.Duration) string {
	label := "starting"
	if blockSize > 0 {
		label = fmt.Sprintf("r=%s%d%s", ui.ColorBold(), blockSize, ui.ColorReset())
	}
	return fmt.Sprintf(" %s (%d/%d) %s", label, done, total,
		format.FormatProgressBarWithETA(float64(done)/float64(total), eta, ProgressBarWidth))
}
