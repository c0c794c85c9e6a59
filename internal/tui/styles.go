package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/matbench/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	rowHeaderStyle     lipgloss.Style
	rowBlockStyle      lipgloss.Style
	rowFasterStyle     lipgloss.Style
	rowEvenStyle       lipgloss.Style
	rowSlowerStyle     lipgloss.Style
	rowErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	speedupChartStyle  lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again once InitTheme has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)
	panelTitleStyle = fg(t.Accent).Bold(true)

	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)
	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	rowHeaderStyle = fg(t.Dim).Underline(true)
	rowBlockStyle = fg(t.Info)
	rowFasterStyle = fg(t.Success)
	rowEvenStyle = fg(t.Warning)
	rowSlowerStyle = fg(t.Error)
	rowErrorStyle = fg(t.Error).Bold(true)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)
	speedupChartStyle = fg(t.Success)

	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)

	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}

// speedupStyle picks the row style for a speedup ratio using the same
// bands as the CLI table.
func speedupStyle(ratio float64) lipgloss.Style {
	switch ui.ClassifySpeedup(ratio) {
	case ui.SpeedupFaster:
		return rowFasterStyle
	case ui.SpeedupEven:
		return rowEvenStyle
	default:
		return rowSlowerStyle
	}
}
