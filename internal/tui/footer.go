package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the status and the key hints.
type FooterModel struct {
	bindings []key.Binding
	paused   bool
	done     bool
	failed   bool
	width    int
}

// NewFooterModel creates a footer advertising km.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{bindings: km.footerBindings()}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused status.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the finished status.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError toggles the failed status.
func (f *FooterModel) SetError(e bool) { f.failed = e }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("FAILED")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("RUNNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + f.status() + "  " + strings.Join(hints, "  ")
}
