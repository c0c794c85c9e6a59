package format

import (
	"testing"
	"time"
)

func TestFormatMillis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.000"},
		{1500 * time.Microsecond, "1.500"},
		{42 * time.Millisecond, "42.000"},
		{2 * time.Second, "2000.000"},
	}
	for _, tt := range tests {
		if got := FormatMillis(tt.d); got != tt.want {
			t.Errorf("FormatMillis(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSpeedup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "n/a"},
		{-1, "n/a"},
		{1, "1.00x"},
		{2.346, "2.35x"},
	}
	for _, tt := range tests {
		if got := FormatSpeedup(tt.ratio); got != tt.want {
			t.Errorf("FormatSpeedup(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{750 * time.Microsecond, "750µs"},
		{42 * time.Millisecond, "42ms"},
		{3*time.Second + 500*time.Millisecond, "3.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
