package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/cli"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/orchestration"
	"github.com/agbru/matbench/internal/ui"
)

// runCLI runs the sweep with a spinner and prints the report.
func (a *Application) runCLI(ctx context.Context, h *benchmark.Harness, in orchestration.Inputs, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, in.Seed, out)
		cli.PrintExecutionMode(a.Config, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	report, err := orchestration.ExecuteSweep(ctx, h, in, a.Config.ToBenchmarkConfig(), reporter, progressOut)
	if err != nil {
		// A failed sweep has no report worth printing.
		return presenter.HandleError(a.explainTimeout(err), out)
	}

	opts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	if code := orchestration.AnalyzeReport(report, opts, presenter, out); code != apperrors.ExitSuccess {
		return code
	}
	return a.saveReport(report, out)
}

// saveReport writes the report when --output is set.
func (a *Application) saveReport(report *benchmark.Report, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	cfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Format: a.Config.OutputFormat()}
	if err := cli.WriteReportToFile(report, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}
