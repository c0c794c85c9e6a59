package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/matbench/internal/benchmark"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/matrix"
)

// ProgressBufferSize is the capacity of the progress channel. A small buffer
// keeps the sweep from stalling on a slow terminal between block sizes.
const ProgressBufferSize = 8

// Inputs holds the two operands of a run and the seed they came from.
type Inputs struct {
	A, B matrix.Matrix
	Seed uint64
}

// GenerateInputs builds A and B of order n concurrently. A is generated from
// seed and B from seed+1, so a run is fully determined by (n, seed). A zero
// seed draws a fresh one.
//
// Parameters:
//   - ctx: Cancels the run before generation starts.
//   - n: The matrix order.
//   - seed: The generation seed, or 0 for a fresh one.
//
// Returns:
//   - Inputs: The generated operands and the seed actually used.
//   - error: A DimensionError for a non-positive n, or the context error.
func GenerateInputs(ctx context.Context, n int, seed uint64) (Inputs, error) {
	if n <= 0 {
		return Inputs{}, apperrors.DimensionError{Operand: "n", Got: n}
	}
	if seed == 0 {
		seed = matrix.NewSeed()
	}
	in := Inputs{Seed: seed}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		in.A = matrix.Generate(n, seed)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		in.B = matrix.Generate(n, seed+1)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// ExecuteSweep runs the harness over the inputs while progressReporter
// displays one update per block size.
//
// The reporter runs on its own goroutine and always sees the progress
// channel closed before ExecuteSweep returns, whatever the outcome.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - h: The harness performing the measurements.
//   - in: The operands.
//   - cfg: The sweep configuration. Its Seed is overwritten with in.Seed.
//   - progressReporter: The progress display (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - *benchmark.Report: The completed report, or nil on error.
//   - error: The first error encountered.
func ExecuteSweep(ctx context.Context, h *benchmark.Harness, in Inputs, cfg benchmark.Config, progressReporter ProgressReporter, out io.Writer) (*benchmark.Report, error) {
	cfg.Seed = in.Seed
	progressChan := make(chan benchmark.ProgressUpdate, ProgressBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, cfg.Sizes(in.A.N), out)

	report, err := h.Run(ctx, in.A, in.B, cfg, progressChan)
	close(progressChan)
	displayWg.Wait()

	return report, err
}

// AnalyzeReport presents a completed report and returns the exit code.
// An empty report, which happens for an order of 1, is a success with
// nothing to show.
//
// Parameters:
//   - report: The report to present.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0).
func AnalyzeReport(report *benchmark.Report, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	if report.Empty() {
		if !opts.Quiet {
			fmt.Fprintf(out, "No block size to measure for n=%d (the sweep covers 1..n-1).\n", report.N)
		}
		return apperrors.ExitSuccess
	}
	presenter.PresentReport(report, opts, out)
	presenter.PresentSummary(report, opts, out)
	return apperrors.ExitSuccess
}
