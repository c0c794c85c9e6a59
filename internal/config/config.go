package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/matbench/internal/benchmark"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/logging"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "MATBENCH_"

// Default values for the command-line flags.
const (
	DefaultN        = 20
	DefaultRepeat   = 1
	DefaultTimeout  = 5 * time.Minute
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the matrix order.
	N int
	// MinBlock and MaxBlock bound the swept block sizes. MaxBlock 0 means n-1.
	MinBlock int
	MaxBlock int
	// Seed drives input generation. 0 draws a fresh seed per run.
	Seed uint64
	// Repeat is the number of passes per strategy and block size.
	Repeat int
	// Verify compares every result with the unblocked reference product.
	Verify bool
	// LegacyBlockCount displays ⌈n/r⌉·n instead of the true block count.
	LegacyBlockCount bool
	// MaxTasks caps concurrently running block tasks. 0 means unlimited; a
	// sweep that exceeds the cap fails with a task launch error.
	MaxTasks int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// OutputFile receives a copy of the report. Its extension selects the
	// format: .json, .csv, anything else is text.
	OutputFile string
	Quiet      bool
	Verbose    bool
	LogLevel   string
	// MetricsAddr, when set, serves Prometheus metrics during the run.
	MetricsAddr string
	TUI         bool
	NoColor     bool
	// Completion names a shell whose completion script should be printed.
	Completion  string
	ShowVersion bool
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides and validates the result. Usage and parse
// errors are written to errorWriter. flag.ErrHelp is returned unchanged
// when -h is given.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments.
//   - errorWriter: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp, or a ConfigError describing the first problem.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	var config AppConfig
	fs.IntVar(&config.N, "n", DefaultN, "Order of the square matrices.")
	fs.IntVar(&config.MinBlock, "min-block", 1, "Smallest block size to measure.")
	fs.IntVar(&config.MaxBlock, "max-block", 0, "Largest block size to measure (default n-1).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for matrix generation (0 = fresh seed).")
	fs.IntVar(&config.Repeat, "repeat", DefaultRepeat, "Passes per strategy; the fastest is reported.")
	fs.BoolVar(&config.Verify, "verify", false, "Check every result against the unblocked product.")
	fs.BoolVar(&config.LegacyBlockCount, "legacy-block-count", false, "Report ceil(n/r)*n blocks instead of ceil(n/r)^2.")
	fs.IntVar(&config.MaxTasks, "max-tasks", 0, "Maximum concurrent block tasks (0 = unlimited).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the whole run.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the report to a file (.json, .csv or text).")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the report lines.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show environment and indicator details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errorWriter, "Benchmarks block-sequential against block-parallel matrix multiplication\nacross block sizes.\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery flag can also be set through %s<NAME>, e.g. %sN=200.\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	if config.ShowVersion || config.Completion != "" {
		return config, nil
	}
	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for consistency. An order of 1 is valid
// and simply yields an empty sweep; for larger orders the resolved block
// range must not be empty.
func (c AppConfig) Validate() error {
	if c.N <= 0 {
		return apperrors.NewConfigError("%v", apperrors.DimensionError{Operand: "n", Got: c.N})
	}
	if c.MinBlock < 1 {
		return apperrors.NewConfigError("--min-block must be at least 1, got %d", c.MinBlock)
	}
	if c.MaxBlock < 0 {
		return apperrors.NewConfigError("--max-block must not be negative, got %d", c.MaxBlock)
	}
	if c.MaxBlock > c.N {
		return apperrors.NewConfigError("--max-block %d exceeds the matrix order %d", c.MaxBlock, c.N)
	}
	if c.MaxBlock != 0 && c.MaxBlock < c.MinBlock {
		return apperrors.NewConfigError("--max-block %d is smaller than --min-block %d", c.MaxBlock, c.MinBlock)
	}
	if sweep := ApplySweepDefaults(c); c.N > 1 && sweep.MaxBlock < sweep.MinBlock {
		return apperrors.NewConfigError("--min-block %d leaves nothing to sweep: the default --max-block is n-1 = %d", c.MinBlock, sweep.MaxBlock)
	}
	if c.Repeat < 1 {
		return apperrors.NewConfigError("--repeat must be at least 1, got %d", c.Repeat)
	}
	if c.MaxTasks < 0 {
		return apperrors.NewConfigError("--max-tasks must not be negative, got %d", c.MaxTasks)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("--log-level: %v", err)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet cannot be combined")
	}
	return nil
}

// OutputFormat returns "json", "csv" or "text" from the output file
// extension.
func (c AppConfig) OutputFormat() string {
	switch strings.ToLower(filepath.Ext(c.OutputFile)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	default:
		return "text"
	}
}

// ToBenchmarkConfig returns the sweep parameters for the harness.
func (c AppConfig) ToBenchmarkConfig() benchmark.Config {
	c = ApplySweepDefaults(c)
	return benchmark.Config{
		MinBlock:         c.MinBlock,
		MaxBlock:         c.MaxBlock,
		Repeat:           c.Repeat,
		Verify:           c.Verify,
		LegacyBlockCount: c.LegacyBlockCount,
		Seed:             c.Seed,
	}
}
