package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/matbench/internal/format"
)

// HeaderModel renders the top bar: title, matrix order, seed and elapsed
// time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	n         int
	seed      uint64
	width     int
}

// NewHeaderModel creates a header for an n×n sweep generated from seed.
func NewHeaderModel(version string, n int, seed uint64) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		n:         n,
		seed:      seed,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "matbench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")
	row := titleStyle.Render(titleText) +
		pipe + versionStyle.Render(fmt.Sprintf("n=%d seed=%d", h.n, h.seed)) +
		pipe + elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.elapsed()))

	gap := max(0, h.width-2-lipgloss.Width(row))
	return headerStyle.Width(h.width).Render(row + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}
