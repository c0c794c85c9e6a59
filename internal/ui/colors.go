package ui

// Color accessors resolve against the active theme so that --no-color and
// NO_COLOR turn every sequence into the empty string.

// ColorReset returns the sequence that restores default attributes.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold attribute.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline attribute.
func ColorUnderline() string { return GetCurrentTheme().Underline }
