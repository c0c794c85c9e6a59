package ui

import "testing"

func TestColorAccessorsFollowTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	accessors := map[string]struct {
		get  func() string
		want string
	}{
		"reset":     {ColorReset, DarkTheme.Reset},
		"red":       {ColorRed, DarkTheme.Error},
		"green":     {ColorGreen, DarkTheme.Success},
		"yellow":    {ColorYellow, DarkTheme.Warning},
		"blue":      {ColorBlue, DarkTheme.Primary},
		"magenta":   {ColorMagenta, DarkTheme.Info},
		"cyan":      {ColorCyan, DarkTheme.Secondary},
		"bold":      {ColorBold, DarkTheme.Bold},
		"underline": {ColorUnderline, DarkTheme.Underline},
	}
	for name, a := range accessors {
		if got := a.get(); got != a.want {
			t.Errorf("%s: got %q, want %q", name, got, a.want)
		}
	}

	SetCurrentTheme(NoColorTheme)
	for name, a := range accessors {
		if got := a.get(); got != "" {
			t.Errorf("%s under no-color theme: got %q, want empty", name, got)
		}
	}
}
