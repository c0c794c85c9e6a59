package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps the estimate shown for very slow progress.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample in the exponential
// moving average used for the ETA.
const etaSmoothing = 0.3

// ETATracker estimates the time left in a sweep from the fraction of
// block sizes measured so far. The completion rate is an exponential moving
// average, so one unusually slow or fast size does not swing the estimate.
type ETATracker struct {
	fraction     float64
	lastUpdate   time.Time
	lastFraction float64
	rate         float64 // fraction per second
	now          func() time.Time
}

// NewETATracker returns a tracker at zero progress starting now.
func NewETATracker() *ETATracker {
	return newETATracker(time.Now)
}

func newETATracker(now func() time.Time) *ETATracker {
	return &ETATracker{lastUpdate: now(), now: now}
}

// Update records the sweep fraction, clamped to [0, 1], and returns the
// new estimate. A fraction that does not advance leaves the rate unchanged.
func (t *ETATracker) Update(fraction float64) time.Duration {
	t.fraction = clamp01(fraction)
	now := t.now()
	if dt := now.Sub(t.lastUpdate).Seconds(); dt > 0 && t.fraction > t.lastFraction {
		rate := (t.fraction - t.lastFraction) / dt
		if t.rate == 0 {
			t.rate = rate
		} else {
			t.rate = etaSmoothing*rate + (1-etaSmoothing)*t.rate
		}
		t.lastUpdate = now
		t.lastFraction = t.fraction
	}
	return t.ETA()
}

// Fraction returns the last recorded fraction.
func (t *ETATracker) Fraction() float64 { return t.fraction }

// ETA returns the current estimate, 0 while no rate is known or once the
// sweep is complete, capped at maxETA.
func (t *ETATracker) ETA() time.Duration {
	if t.rate <= 0 || t.fraction >= 1 {
		return 0
	}
	eta := time.Duration((1 - t.fraction) / t.rate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate compactly: "< 1s", "45s", "2m30s", "1h15m".
// Unknown estimates render as "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar returns a bar of length cells for progress in [0, 1].
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 12s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
