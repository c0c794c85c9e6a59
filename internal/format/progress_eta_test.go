package format

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// near reports whether got is within a millisecond of want; the rate is a
// float average.
func near(got, want time.Duration) bool {
	return (got - want).Abs() < time.Millisecond
}

func TestETATracker_SteadySweep(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newETATracker(clock.now)

	if tr.ETA() != 0 {
		t.Error("no estimate before the first block size")
	}

	// Ten block sizes, one per second.
	clock.advance(time.Second)
	if eta := tr.Update(0.1); !near(eta, 9*time.Second) {
		t.Errorf("after 1 of 10 sizes ETA = %v, want 9s", eta)
	}
	clock.advance(time.Second)
	if eta := tr.Update(0.2); !near(eta, 8*time.Second) {
		t.Errorf("after 2 of 10 sizes ETA = %v, want 8s", eta)
	}
	if tr.Fraction() != 0.2 {
		t.Errorf("Fraction() = %v, want 0.2", tr.Fraction())
	}
}

func TestETATracker_SmoothsSlowSize(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newETATracker(clock.now)

	clock.advance(time.Second)
	tr.Update(0.25)
	// The next size takes three times as long; the smoothed rate must sit
	// between the old and the new one.
	clock.advance(3 * time.Second)
	eta := tr.Update(0.5)
	fastest, slowest := 2*time.Second, 6*time.Second
	if eta <= fastest || eta >= slowest {
		t.Errorf("ETA = %v, want strictly between %v and %v", eta, fastest, slowest)
	}
}

func TestETATracker_EdgeCases(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newETATracker(clock.now)

	// No elapsed time: no rate can be derived.
	if eta := tr.Update(0.5); eta != 0 {
		t.Errorf("ETA without elapsed time = %v, want 0", eta)
	}

	clock.advance(time.Second)
	tr.Update(0.5)
	clock.advance(time.Second)
	before := tr.ETA()
	if eta := tr.Update(0.5); eta != before {
		t.Errorf("a stalled fraction should keep the estimate, got %v want %v", eta, before)
	}

	if tr.Update(1.7); tr.Fraction() != 1 || tr.ETA() != 0 {
		t.Errorf("complete sweep: fraction %v ETA %v", tr.Fraction(), tr.ETA())
	}
	if tr.Update(-0.3); tr.Fraction() != 0 {
		t.Errorf("negative fraction should clamp to 0, got %v", tr.Fraction())
	}
}

func TestETATracker_Cap(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newETATracker(clock.now)
	clock.advance(1000 * time.Hour)
	if eta := tr.Update(0.001); eta != maxETA {
		t.Errorf("ETA = %v, want cap %v", eta, maxETA)
	}
}

func TestNewETATracker_UsesWallClock(t *testing.T) {
	tr := NewETATracker()
	if tr.now == nil || time.Since(tr.lastUpdate) > time.Minute {
		t.Error("tracker should start at the current time")
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{3 * time.Minute, "3m"},
		{3*time.Minute + 5*time.Second, "3m5s"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 20*time.Minute, "2h20m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		filled   int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.4, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, 10)
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("ProgressBar(%v) has %d filled cells, want %d", tt.progress, n, tt.filled)
		}
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("ProgressBar(%v) has %d cells, want 10", tt.progress, n)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	got := FormatProgressBarWithETA(0.25, 90*time.Second, 4)
	if got != "[█░░░]  25.0% ETA: 1m30s" {
		t.Errorf("got %q", got)
	}
	if got := FormatProgressBarWithETA(0, 0, 2); !strings.HasSuffix(got, "ETA: calculating...") {
		t.Errorf("unknown ETA should be spelled out, got %q", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"8", "8"},
		{"512", "512"},
		{"8000", "8,000"},
		{"262144", "262,144"},
		{"1000000000", "1,000,000,000"},
		{"-27000", "-27,000"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
