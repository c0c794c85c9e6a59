package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/matbench/internal/metrics"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()
	msg := MemStatsMsg{Alloc: 50 << 20, HeapSys: 80 << 20, NumGC: 10, PauseTotalNs: 2e6, NumGoroutine: 8}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc || m.heapSys != msg.HeapSys || m.numGC != msg.NumGC || m.numGoroutine != msg.NumGoroutine {
		t.Errorf("memory stats not stored: %+v", m)
	}
}

func TestMetricsModel_UpdateProgress(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-time.Second)

	m.UpdateProgress(2)
	if m.speed < 1 || m.speed > 2.1 {
		t.Errorf("expected about 2 sizes/s, got %f", m.speed)
	}
	if m.lastDone != 2 {
		t.Errorf("expected lastDone 2, got %d", m.lastDone)
	}
}

func TestMetricsModel_UpdateProgress_Smoothing(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(1)
	first := m.speed

	m.lastUpdate = time.Now().Add(-100 * time.Millisecond)
	m.UpdateProgress(2) // instant rate about 10/s
	if m.speed <= first {
		t.Errorf("speed should rise toward the faster instant rate: %f -> %f", first, m.speed)
	}
	if m.speed >= 10 {
		t.Errorf("speed should be smoothed below the instant rate, got %f", m.speed)
	}
}

func TestMetricsModel_UpdateProgress_IgnoresStale(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(3)
	speed := m.speed
	m.UpdateProgress(3)
	if m.speed != speed {
		t.Error("a repeated count must not change the rate")
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(60, 9)
	m.UpdateMemStats(MemStatsMsg{Alloc: 2048, HeapSys: 4096, NumGoroutine: 3})

	view := m.View()
	for _, want := range []string{"Heap:", "2.0 KiB / 4.0 KiB", "Rate:", "Goroutines:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Contains(view, "Best:") {
		t.Error("indicators should not be shown before the sweep ends")
	}

	m.UpdateIndicators(&metrics.Indicators{BestBlockSize: 4, BestSpeedup: 3.5, MeanSpeedup: 2, Efficiency: 0.5, MulAddsPerSecond: 2e9})
	view = m.View()
	for _, want := range []string{"Best:", "3.50x @ r=4", "Mean:", "2.00x", "Efficiency:", "50.0%", "2.00 G/s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
