package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/matbench/internal/format"
	"github.com/agbru/matbench/internal/metrics"
)

// MetricsModel displays runtime memory statistics, the measurement rate
// and, once the sweep is done, the derived indicators.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	speed        float64 // block sizes per second, smoothed
	lastDone     int
	lastUpdate   time.Time
	indicators   *metrics.Indicators
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProgress folds the number of measured block sizes into the
// smoothed rate.
func (m *MetricsModel) UpdateProgress(done int) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0 || done <= m.lastDone {
		return
	}
	instant := float64(done-m.lastDone) / dt
	if m.speed > 0 {
		m.speed = 0.7*m.speed + 0.3*instant
	} else {
		m.speed = instant
	}
	m.lastDone = done
	m.lastUpdate = now
}

// UpdateIndicators stores the post-sweep indicators.
func (m *MetricsModel) UpdateIndicators(ind *metrics.Indicators) {
	m.indicators = ind
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)))

	colWidth := (m.width - 6) / 2
	leftCol := []string{formatMetricCol("Rate:", fmt.Sprintf("%.1f sizes/s", m.speed), colWidth)}
	rightCol := []string{formatMetricCol("Goroutines:", fmt.Sprint(m.numGoroutine), colWidth)}

	if ind := m.indicators; ind != nil {
		leftCol = append(leftCol,
			formatMetricCol("Best:", fmt.Sprintf("%s @ r=%d", format.FormatSpeedup(ind.BestSpeedup), ind.BestBlockSize), colWidth),
			formatMetricCol("Mul-adds:", metrics.FormatRate(ind.MulAddsPerSecond), colWidth),
		)
		rightCol = append(rightCol,
			formatMetricCol("Mean:", format.FormatSpeedup(ind.MeanSpeedup), colWidth),
			formatMetricCol("Efficiency:", fmt.Sprintf("%.1f%%", ind.Efficiency*100), colWidth),
		)
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(max(0, m.width-2)).
		Height(max(0, m.height-2)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
