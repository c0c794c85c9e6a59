package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddDataPoint(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 14)

	chart.AddDataPoint(0.25, 30*time.Second, 1.5)
	chart.AddDataPoint(0.50, 20*time.Second, 3)
	chart.AddDataPoint(0.75, 10*time.Second, 0.8)

	if chart.fraction != 0.75 {
		t.Errorf("expected fraction 0.75, got %f", chart.fraction)
	}
	if chart.peak != 3 {
		t.Errorf("expected peak 3, got %f", chart.peak)
	}
	if len(chart.speedups) != 3 {
		t.Errorf("expected 3 speedups, got %d", len(chart.speedups))
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel()
	chart.AddDataPoint(0.5, 10*time.Second, 2)
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(time.Second)

	chart.Reset()

	if chart.fraction != 0 || chart.peak != 0 || chart.speedups != nil || chart.done {
		t.Errorf("chart not reset: %+v", chart)
	}
	if chart.cpuHistory.Len() != 0 || chart.memHistory.Len() != 0 {
		t.Error("expected empty histories after reset")
	}
}

func TestChartModel_View(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 14)
	chart.AddDataPoint(0.5, 10*time.Second, 2)
	chart.UpdateSysStats(40, 70)

	view := chart.View()
	for _, want := range []string{"Speedup by block size", "ETA:", "top = 2.00x", "CPU", "MEM", "70.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestChartModel_RenderProgressBar(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 14)
	chart.AddDataPoint(0.5, 10*time.Second, 1)

	bar := chart.renderProgressBar()
	if !strings.Contains(bar, "█") || !strings.Contains(bar, "░") {
		t.Errorf("expected filled and empty cells, got %q", bar)
	}
	if !strings.Contains(bar, "50.0%") {
		t.Errorf("expected 50.0%%, got %q", bar)
	}

	chart.SetDone(1500 * time.Millisecond)
	bar = chart.renderProgressBar()
	if !strings.Contains(bar, "100.0%") || !strings.Contains(bar, "Done in") {
		t.Errorf("finished bar should show completion, got %q", bar)
	}
}

func TestTail(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	if got := tail(values, 2); len(got) != 2 || got[0] != 3 {
		t.Errorf("tail(…, 2) = %v", got)
	}
	if got := tail(values, 10); len(got) != 4 {
		t.Errorf("tail(…, 10) = %v", got)
	}
}
