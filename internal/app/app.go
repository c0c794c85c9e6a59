package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/cli"
	"github.com/agbru/matbench/internal/config"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/executor"
	"github.com/agbru/matbench/internal/logging"
	"github.com/agbru/matbench/internal/metrics"
	"github.com/agbru/matbench/internal/orchestration"
	"github.com/agbru/matbench/internal/server"
	"github.com/agbru/matbench/internal/sysmon"
	"github.com/agbru/matbench/internal/tui"
	"github.com/agbru/matbench/internal/ui"
)

// Application represents the matbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	spawner executor.Spawner
	logger  logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSpawner replaces the goroutine spawner built from --max-tasks.
func WithSpawner(s executor.Spawner) AppOption {
	return func(a *Application) { a.spawner = s }
}

// WithLogger replaces the zerolog logger writing to ErrWriter.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "matbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return apperrors.HandleBenchmarkError(apperrors.NewConfigError("%v", err), a.ErrWriter, cli.CLIColorProvider{})
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return a.runBenchmark(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runBenchmark generates the inputs, wires the executor and harness and
// runs the sweep in the CLI or the dashboard.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	logger := a.componentLogger()

	if need := sysmon.SweepFootprint(a.Config.N, a.Config.Verify); !sysmon.Fits(need) {
		logger.Warn("sweep matrices exceed available memory",
			logging.Int("n", a.Config.N), logging.Uint64("bytes", need))
	}

	in, err := orchestration.GenerateInputs(ctx, a.Config.N, a.Config.Seed)
	if err != nil {
		return presenter.HandleError(a.explainTimeout(err), out)
	}
	logger.Debug("inputs generated", logging.Int("n", a.Config.N), logging.Uint64("seed", in.Seed))

	collector := metrics.NewBenchmarkCollector()
	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx, collector, logger)
		if err != nil {
			return presenter.HandleError(err, out)
		}
		defer func() {
			if err := stop(); err != nil {
				logger.Error("metrics server shutdown failed", err)
			}
		}()
	}

	h := a.newHarness(collector, logger)
	if a.Config.TUI {
		return a.runTUI(ctx, h, in, out)
	}
	return a.runCLI(ctx, h, in, out)
}

// componentLogger returns the injected logger, a silent one for the
// dashboard, or a zerolog logger on ErrWriter.
func (a *Application) componentLogger() logging.Logger {
	switch {
	case a.logger != nil:
		return a.logger
	case a.Config.TUI:
		// Log lines would tear the alternate screen.
		return logging.NopLogger{}
	default:
		return logging.NewLogger(a.ErrWriter, "matbench")
	}
}

func (a *Application) newHarness(collector *metrics.BenchmarkCollector, logger logging.Logger) *benchmark.Harness {
	spawner := a.spawner
	if spawner == nil {
		spawner = executor.NewGoroutineSpawner(a.Config.MaxTasks)
	}
	exec := executor.New(
		executor.WithSpawner(spawner),
		executor.WithLogger(logger),
		executor.WithTaskRecorder(collector),
	)
	opts := []benchmark.Option{
		benchmark.WithLogger(logger),
		benchmark.WithObserver(collector),
	}
	if a.Config.MaxTasks > 0 {
		opts = append(opts, benchmark.WithCapacity(a.Config.MaxTasks))
	}
	return benchmark.NewHarness(exec, opts...)
}

// startMetricsServer serves /metrics until the returned stop function is
// called. A listen failure is returned before the sweep starts.
func (a *Application) startMetricsServer(ctx context.Context, collector *metrics.BenchmarkCollector, logger logging.Logger) (stop func() error, err error) {
	m := server.NewMetrics()
	if err := m.Register(collector); err != nil {
		return nil, fmt.Errorf("registering benchmark metrics: %w", err)
	}
	srv := server.New(a.Config.MetricsAddr, m, logger)

	srvCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	ready := make(chan string, 1)
	g, gctx := errgroup.WithContext(srvCtx)
	g.Go(func() error { return srv.Run(gctx, ready) })

	select {
	case <-ready:
		return func() error {
			cancel()
			return g.Wait()
		}, nil
	case <-gctx.Done():
		cancel()
		return nil, fmt.Errorf("metrics server on %s: %w", a.Config.MetricsAddr, g.Wait())
	}
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, h *benchmark.Harness, in orchestration.Inputs, out io.Writer) int {
	sweep := tui.Sweep{Harness: h, Inputs: in, Config: a.Config.ToBenchmarkConfig()}
	report, code := tui.Run(ctx, sweep, a.Config, Version)
	if code != apperrors.ExitSuccess || report == nil {
		return code
	}
	return a.saveReport(report, out)
}

// explainTimeout replaces a deadline error caused by --timeout with a
// TimeoutError naming the limit.
func (a *Application) explainTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "sweep", Limit: a.Config.Timeout}
	}
	return err
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
