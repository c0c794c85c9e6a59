package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/matbench/internal/config"
	"github.com/agbru/matbench/internal/format"
	"github.com/agbru/matbench/internal/sysmon"
	"github.com/agbru/matbench/internal/ui"
)

// cpuFeatures lists the vector extensions the Go runtime detected. They do
// not change the kernel but explain differences between hosts.
func cpuFeatures() string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}
	add(cpu.X86.HasAVX2, "AVX2")
	add(cpu.X86.HasAVX512F, "AVX-512")
	add(cpu.X86.HasFMA, "FMA")
	add(cpu.ARM64.HasASIMD, "NEON")
	add(cpu.ARM64.HasSVE, "SVE")
	if len(feats) == 0 {
		return "none detected"
	}
	return strings.Join(feats, ", ")
}

// PrintExecutionConfig displays the matrix order, the seed needed to replay
// the run, the timeout and the host environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - seed: The seed the inputs were generated from.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, seed uint64, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Multiplying %s%dx%d%s matrices (seed %s%d%s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, cfg.N, ui.ColorReset(),
		ui.ColorMagenta(), seed, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	work := uint64(cfg.N) * uint64(cfg.N) * uint64(cfg.N)
	fmt.Fprintf(out, "Work per pass: %s multiply-adds.\n", format.FormatNumberString(strconv.FormatUint(work, 10)))
	host := sysmon.DescribeHost()
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(), runtime.GOOS, runtime.GOARCH)
	if host.Model != "" {
		fmt.Fprintf(out, "Processor: %s (%d physical cores), %s installed.\n",
			host.Model, host.PhysicalCores, format.FormatBytes(host.TotalMemory))
	}
	fmt.Fprintf(out, "CPU features: %s.\n", cpuFeatures())
	stats := sysmon.Sample()
	fmt.Fprintf(out, "System load: CPU %.1f%%, memory %.1f%%.\n", stats.CPUPercent, stats.MemPercent)
}

// PrintExecutionMode displays the block sizes the sweep will cover and how
// each one is measured.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionMode(cfg config.AppConfig, out io.Writer) {
	bc := cfg.ToBenchmarkConfig()
	sizes := bc.Sizes(cfg.N)
	if sizes == 0 {
		fmt.Fprintf(out, "Execution mode: nothing to sweep for n=%d.\n", cfg.N)
	} else {
		fmt.Fprintf(out, "Execution mode: sweeping %s%d%s block sizes (%d..%d), best of %d pass(es) per strategy",
			ui.ColorGreen(), sizes, ui.ColorReset(), bc.MinBlock, bc.MaxBlock, bc.Repeat)
		if bc.Verify {
			fmt.Fprint(out, ", verified")
		}
		fmt.Fprintln(out, ".")
	}
	if cfg.MaxTasks > 0 {
		fmt.Fprintf(out, "Concurrent block tasks capped at %d.\n", cfg.MaxTasks)
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
