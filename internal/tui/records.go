package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/format"
)

// recordColumns is the header of the records panel.
const recordColumns = "  block   blocks   seq (ms)   par (ms)   speedup"

// RecordsModel is the scrollable list of measured block sizes.
type RecordsModel struct {
	viewport viewport.Model
	lines    []string
	follow   bool
	width    int
	height   int
}

// NewRecordsModel creates an empty records panel that follows new rows.
func NewRecordsModel() RecordsModel {
	return RecordsModel{viewport: viewport.New(0, 0), follow: true}
}

// SetSize updates dimensions. Two rows go to the border, two to the title
// and column header.
func (m *RecordsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = max(0, w-2)
	m.viewport.Height = max(1, h-4)
	m.refresh()
}

// AddRecord appends one measured block size.
func (m *RecordsModel) AddRecord(rec benchmark.TimingRecord) {
	ratio := rec.Speedup()
	line := fmt.Sprintf("  %s %8d %10s %10s   %s",
		rowBlockStyle.Render(fmt.Sprintf("%5d", rec.BlockSize)),
		rec.Blocks,
		format.FormatMillis(rec.Sequential),
		format.FormatMillis(rec.Parallel),
		speedupStyle(ratio).Render(fmt.Sprintf("%7s", format.FormatSpeedup(ratio))))
	m.lines = append(m.lines, line)
	m.refresh()
}

// AddError appends a failure line.
func (m *RecordsModel) AddError(err error) {
	m.lines = append(m.lines, rowErrorStyle.Render("  error: "+err.Error()))
	m.refresh()
}

// AddNote appends an informational line.
func (m *RecordsModel) AddNote(note string) {
	m.lines = append(m.lines, metricLabelStyle.Render("  "+note))
	m.refresh()
}

// Len returns the number of lines in the panel.
func (m RecordsModel) Len() int { return len(m.lines) }

// Reset clears all lines.
func (m *RecordsModel) Reset() {
	m.lines = nil
	m.follow = true
	m.refresh()
}

func (m *RecordsModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// Update scrolls the panel. Scrolling back to the end resumes following.
func (m *RecordsModel) Update(msg tea.Msg) {
	m.viewport, _ = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
}

// View renders the panel.
func (m RecordsModel) View() string {
	body := panelTitleStyle.Render("Block sizes") + "\n" +
		rowHeaderStyle.Render(recordColumns) + "\n" +
		m.viewport.View()
	return panelStyle.
		Width(max(0, m.width-2)).
		Height(max(0, m.height-2)).
		Render(body)
}
