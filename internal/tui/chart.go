package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/matbench/internal/format"
)

// sysHistorySize bounds the CPU and memory sparklines until the first
// resize.
const sysHistorySize = 120

// ChartModel shows sweep progress, the speedup of each measured block
// size and system load sparklines.
type ChartModel struct {
	fraction   float64
	eta        time.Duration
	speedups   []float64
	peak       float64
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	elapsed    time.Duration
	done       bool
	width      int
	height     int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewRingBuffer(sysHistorySize),
		memHistory: NewRingBuffer(sysHistorySize),
	}
}

// SetSize updates dimensions and trims the load histories to what the
// sparklines can show.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.cpuHistory.Resize(c.sparkWidth())
	c.memHistory.Resize(c.sparkWidth())
}

// AddDataPoint records the progress after one block size and its speedup.
func (c *ChartModel) AddDataPoint(fraction float64, eta time.Duration, speedup float64) {
	c.fraction = fraction
	c.eta = eta
	c.speedups = append(c.speedups, speedup)
	c.peak = max(c.peak, speedup)
}

// UpdateSysStats pushes a system load sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone marks the sweep finished after elapsed.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.fraction = 1
	c.eta = 0
}

// Reset clears all data.
func (c *ChartModel) Reset() {
	c.fraction, c.eta, c.peak = 0, 0, 0
	c.speedups = nil
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.done = false
	c.elapsed = 0
}

func (c ChartModel) innerWidth() int { return max(10, c.width-6) }

func (c ChartModel) sparkWidth() int { return max(1, c.innerWidth()-14) }

// renderProgressBar renders the bar with either the ETA or the total time.
func (c ChartModel) renderProgressBar() string {
	barWidth := max(10, c.innerWidth()-20)
	bar := format.ProgressBar(c.fraction, barWidth)
	filled := strings.TrimRight(bar, "░")
	line := chartBarStyle.Render(filled) + chartEmptyStyle.Render(bar[len(filled):]) +
		fmt.Sprintf(" %5.1f%%", c.fraction*100)
	if c.done {
		return line + "  Done in " + format.FormatExecutionDuration(c.elapsed)
	}
	return line + "  ETA: " + format.FormatETA(c.eta)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Speedup by block size"))
	b.WriteString("\n  ")
	b.WriteString(c.renderProgressBar())

	// Title, bar, two sparkline rows and the peak label are fixed.
	chartRows := max(1, c.height-2-5)
	ceiling := max(c.peak, 1)
	for _, line := range RenderBrailleChart(c.speedups, ceiling, c.innerWidth(), chartRows) {
		b.WriteString("\n  ")
		b.WriteString(speedupChartStyle.Render(line))
	}
	fmt.Fprintf(&b, "\n  %s", metricLabelStyle.Render(fmt.Sprintf("top = %s", format.FormatSpeedup(ceiling))))

	sparkWidth := c.sparkWidth()
	cpu := c.cpuHistory.Slice()
	mem := c.memHistory.Slice()
	fmt.Fprintf(&b, "\n  %s %s %5.1f%%", metricLabelStyle.Render("CPU"),
		cpuSparklineStyle.Render(RenderSparkline(tail(cpu, sparkWidth), 100)), c.cpuHistory.Last())
	fmt.Fprintf(&b, "\n  %s %s %5.1f%%", metricLabelStyle.Render("MEM"),
		memSparklineStyle.Render(RenderSparkline(tail(mem, sparkWidth), 100)), c.memHistory.Last())

	return panelStyle.
		Width(max(0, c.width-2)).
		Height(max(0, c.height-2)).
		Render(b.String())
}

// tail returns at most the last n values.
func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}
