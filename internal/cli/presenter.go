package cli

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/agbru/matbench/internal/benchmark"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/format"
	"github.com/agbru/matbench/internal/metrics"
	"github.com/agbru/matbench/internal/orchestration"
	"github.com/agbru/matbench/internal/sysmon"
	"github.com/agbru/matbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan benchmark.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// reportColumns are the table headers, in display order.
var reportColumns = []string{"Block size", "Blocks", "Sequential (ms)", "Parallel (ms)", "Speedup"}

// PresentReport prints one row per block size. Quiet mode prints the same
// fields space-separated without header or colors.
// Widths are computed on the plain text so ANSI codes do not skew alignment.
func (CLIResultPresenter) PresentReport(report *benchmark.Report, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietReport(out, report)
		return
	}

	rows := make([][]string, len(report.Records))
	widths := make([]int, len(reportColumns))
	for i, h := range reportColumns {
		widths[i] = len(h)
	}
	for i, rec := range report.Records {
		rows[i] = []string{
			fmt.Sprint(rec.BlockSize),
			fmt.Sprint(rec.Blocks),
			format.FormatMillis(rec.Sequential),
			format.FormatMillis(rec.Parallel),
			format.FormatSpeedup(rec.Speedup()),
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	fmt.Fprintf(out, "\n--- Sweep Report (n=%d) ---\n", report.N)
	for j, h := range reportColumns {
		fmt.Fprintf(out, "%s%s%s%s", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[j]-len(h)))
		if j < len(reportColumns)-1 {
			fmt.Fprint(out, "   ")
		}
	}
	fmt.Fprintln(out)

	theme := ui.GetCurrentTheme()
	for i, row := range rows {
		speedColor := theme.SpeedupColor(report.Records[i].Speedup())
		for j, cell := range row {
			// Numeric columns are right-aligned.
			fmt.Fprint(out, padRight("", widths[j]-len(cell)))
			if j == len(row)-1 {
				fmt.Fprintf(out, "%s%s%s", speedColor, cell, ui.ColorReset())
			} else {
				fmt.Fprint(out, cell)
				fmt.Fprint(out, "   ")
			}
		}
		fmt.Fprintln(out)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentSummary prints the best block size and the run parameters needed
// to replay the sweep. Verbose mode adds derived indicators and memory
// statistics.
func (CLIResultPresenter) PresentSummary(report *benchmark.Report, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		return
	}
	best, ok := report.Best()
	if !ok {
		return
	}
	fmt.Fprintf(out, "\nBest speedup: %s%s%s at block size %s%d%s (%d blocks).\n",
		ui.ColorGreen(), format.FormatSpeedup(best.Speedup()), ui.ColorReset(),
		ui.ColorBold(), best.BlockSize, ui.ColorReset(), best.Blocks)
	fmt.Fprintf(out, "Seed: %s%d%s, repeat: %d, elapsed: %s.\n",
		ui.ColorMagenta(), report.Seed, ui.ColorReset(), report.Repeat,
		format.FormatExecutionDuration(report.Elapsed))
	if report.Verified {
		fmt.Fprintf(out, "%sAll passes matched the unblocked product.%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	if report.LegacyBlockCount {
		fmt.Fprintf(out, "%sBlock counts use the ceil(n/r)*n formula.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	if !opts.Verbose {
		return
	}
	if ind := metrics.ComputeIndicators(report, runtime.NumCPU()); ind != nil {
		DisplayIndicators(ind, out)
	}
	DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), sysmon.SweepFootprint(report.N, report.Verified), out)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	return apperrors.HandleBenchmarkError(err, out, CLIColorProvider{})
}

// DisplayIndicators prints the derived sweep indicators.
func DisplayIndicators(ind *metrics.Indicators, out io.Writer) {
	fmt.Fprintf(out, "\nIndicators:\n")
	fmt.Fprintf(out, "  Mean speedup:     %s\n", format.FormatSpeedup(ind.MeanSpeedup))
	fmt.Fprintf(out, "  Efficiency:       %.1f%%\n", ind.Efficiency*100)
	fmt.Fprintf(out, "  Mul-add rate:     %s\n", metrics.FormatRate(ind.MulAddsPerSecond))
	fmt.Fprintf(out, "  Parallel faster:  %d block size(s)\n", ind.FasterSizes)
}

// DisplayMemoryStats shows runtime memory statistics after a sweep and how
// much of the heap the sweep matrices account for.
func DisplayMemoryStats(snap metrics.MemorySnapshot, matrixBytes uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Sweep matrices:   %s (%.0f%% of heap)\n", format.FormatBytes(matrixBytes), snap.MatrixShare(matrixBytes)*100)
	fmt.Fprintf(out, "  Heap in use:      %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Obtained from OS: %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(out, "  GC cycles:        %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:   %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}

// CLIColorProvider implements apperrors.ColorProvider using the ui theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
