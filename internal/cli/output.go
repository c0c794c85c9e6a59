// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayQuietReport], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatReportText], [FormatQuietRecord].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/format"
)

// OutputConfig holds configuration for report output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Format is "json", "csv" or "text". Empty derives it from the file
	// extension.
	Format string
}

// formatFor returns the export format for cfg.
func (cfg OutputConfig) formatFor() string {
	if cfg.Format != "" {
		return cfg.Format
	}
	switch strings.ToLower(filepath.Ext(cfg.OutputFile)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	default:
		return "text"
	}
}

// recordDocument is the JSON form of a benchmark.TimingRecord.
type recordDocument struct {
	BlockSize    int     `json:"block_size"`
	Blocks       int     `json:"blocks"`
	SequentialMs float64 `json:"sequential_ms"`
	ParallelMs   float64 `json:"parallel_ms"`
	Speedup      float64 `json:"speedup"`
}

// reportDocument is the JSON form of a benchmark.Report.
type reportDocument struct {
	N                int              `json:"n"`
	Seed             uint64           `json:"seed"`
	MinBlock         int              `json:"min_block"`
	MaxBlock         int              `json:"max_block"`
	Repeat           int              `json:"repeat"`
	Verified         bool             `json:"verified"`
	LegacyBlockCount bool             `json:"legacy_block_count"`
	StartedAt        time.Time        `json:"started_at"`
	ElapsedMs        float64          `json:"elapsed_ms"`
	Records          []recordDocument `json:"records"`
}

func newReportDocument(r *benchmark.Report) reportDocument {
	doc := reportDocument{
		N:                r.N,
		Seed:             r.Seed,
		MinBlock:         r.MinBlock,
		MaxBlock:         r.MaxBlock,
		Repeat:           r.Repeat,
		Verified:         r.Verified,
		LegacyBlockCount: r.LegacyBlockCount,
		StartedAt:        r.StartedAt,
		ElapsedMs:        float64(r.Elapsed) / float64(time.Millisecond),
		Records:          make([]recordDocument, 0, len(r.Records)),
	}
	for _, rec := range r.Records {
		doc.Records = append(doc.Records, recordDocument{
			BlockSize:    rec.BlockSize,
			Blocks:       rec.Blocks,
			SequentialMs: rec.SequentialMs(),
			ParallelMs:   rec.ParallelMs(),
			Speedup:      rec.Speedup(),
		})
	}
	return doc
}

// WriteReportToFile writes report to config.OutputFile in the format
// selected by config, creating parent directories as needed. It is a no-op
// when no file is configured.
//
// Parameters:
//   - report: The completed sweep report.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(report *benchmark.Report, config OutputConfig) (err error) {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return WriteReport(file, report, config.formatFor())
}

// WriteReport encodes report to w as "json", "csv" or "text".
func WriteReport(w io.Writer, report *benchmark.Report, kind string) error {
	switch kind {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newReportDocument(report)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case "csv":
		return writeCSV(w, report)
	case "text":
		_, err := io.WriteString(w, FormatReportText(report))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", kind)
	}
}

func writeCSV(w io.Writer, report *benchmark.Report) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"block_size", "blocks", "sequential_ms", "parallel_ms", "speedup"}}
	for _, rec := range report.Records {
		rows = append(rows, []string{
			strconv.Itoa(rec.BlockSize),
			strconv.Itoa(rec.Blocks),
			strconv.FormatFloat(rec.SequentialMs(), 'f', 6, 64),
			strconv.FormatFloat(rec.ParallelMs(), 'f', 6, 64),
			strconv.FormatFloat(rec.Speedup(), 'f', 4, 64),
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

// FormatReportText renders report as a commented header followed by one
// quiet-format line per block size.
func FormatReportText(report *benchmark.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Matrix Multiplication Benchmark\n")
	fmt.Fprintf(&b, "# Generated: %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "# N: %d\n", report.N)
	fmt.Fprintf(&b, "# Seed: %d\n", report.Seed)
	fmt.Fprintf(&b, "# Block sizes: %d..%d\n", report.MinBlock, report.MaxBlock)
	fmt.Fprintf(&b, "# Repeat: %d\n", report.Repeat)
	fmt.Fprintf(&b, "# Verified: %t\n", report.Verified)
	if report.LegacyBlockCount {
		fmt.Fprintf(&b, "# Block count formula: ceil(n/r)*n\n")
	}
	fmt.Fprintf(&b, "# block_size blocks sequential_ms parallel_ms speedup\n")
	for _, rec := range report.Records {
		b.WriteString(FormatQuietRecord(rec))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatQuietRecord renders one record as space-separated fields suitable
// for scripting.
func FormatQuietRecord(rec benchmark.TimingRecord) string {
	return fmt.Sprintf("%d %d %s %s %s", rec.BlockSize, rec.Blocks,
		format.FormatMillis(rec.Sequential), format.FormatMillis(rec.Parallel),
		strconv.FormatFloat(rec.Speedup(), 'f', 2, 64))
}

// DisplayQuietReport prints every record with FormatQuietRecord.
func DisplayQuietReport(out io.Writer, report *benchmark.Report) {
	for _, rec := range report.Records {
		fmt.Fprintln(out, FormatQuietRecord(rec))
	}
}
