// Package ui holds the color themes shared by the CLI presenter and the TUI
// dashboard. The CLI uses raw ANSI sequences; the TUI uses lipgloss colors.
package ui
