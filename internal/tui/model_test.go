package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/config"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/executor"
	"github.com/agbru/matbench/internal/matrix"
	"github.com/agbru/matbench/internal/orchestration"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	in := orchestration.Inputs{A: matrix.Generate(4, 1), B: matrix.Generate(4, 2), Seed: 1}
	m := NewModel(context.Background(), Sweep{Inputs: in}, config.AppConfig{N: 4}, "v1.0.0")
	t.Cleanup(m.cancel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func progress(gen uint64, done int) ProgressMsg {
	return ProgressMsg{
		Done: done, Total: 3, Fraction: float64(done) / 3,
		Record:     benchmark.TimingRecord{BlockSize: done, Blocks: 4, Sequential: 2 * time.Millisecond, Parallel: time.Millisecond},
		Generation: gen,
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(context.Background(), Sweep{}, config.AppConfig{}, "dev")
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Error("unsized model should show the placeholder")
	}

	m = newTestModel(t)
	view := m.View()
	for _, want := range []string{"matbench v1.0.0", "n=4 seed=1", "Block sizes", "Heap:", "Speedup by block size", "RUNNING", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_Progress(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, progress(0, 1))
	m, _ = update(t, m, progress(0, 2))
	if m.records.Len() != 2 {
		t.Errorf("expected 2 records, got %d", m.records.Len())
	}
	if len(m.chart.speedups) != 2 || m.chart.peak != 2 {
		t.Errorf("chart not updated: %+v", m.chart.speedups)
	}

	// Stale generation is ignored.
	m, _ = update(t, m, progress(7, 3))
	if m.records.Len() != 2 {
		t.Error("stale progress should be ignored")
	}
}

func TestModel_PauseBuffersProgress(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.paused {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, progress(0, 1))
	if m.records.Len() != 0 || len(m.pending) != 1 {
		t.Fatalf("paused model should buffer progress, records=%d pending=%d", m.records.Len(), len(m.pending))
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.paused || m.records.Len() != 1 || m.pending != nil {
		t.Errorf("resume should apply buffered progress, records=%d pending=%d", m.records.Len(), len(m.pending))
	}
}

func TestModel_SweepComplete(t *testing.T) {
	m := newTestModel(t)
	report := &benchmark.Report{N: 4, Records: []benchmark.TimingRecord{progress(0, 1).Record}}

	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitSuccess, Report: report, Generation: 3})
	if m.done {
		t.Fatal("completion of another generation should be ignored")
	}
	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitSuccess, Report: report})
	if !m.done || m.report != report || !m.chart.done {
		t.Errorf("completion not applied: done=%v report=%v", m.done, m.report)
	}
	if !strings.Contains(m.View(), "DONE") {
		t.Error("footer should show DONE")
	}
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once done")
	}
}

func TestModel_EmptySweepNote(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, SweepCompleteMsg{Report: &benchmark.Report{N: 1}})
	if !strings.Contains(m.View(), "no block size to measure") {
		t.Error("empty sweep should be explained")
	}
}

func TestModel_Error(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitErrorGeneric})
	if m.exitCode != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d", m.exitCode)
	}
	view := m.View()
	if !strings.Contains(view, "FAILED") || !strings.Contains(view, "error: boom") {
		t.Error("failure should be visible")
	}
}

func TestModel_QuitWhileRunning(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	if m.ctx.Err() == nil {
		t.Error("quit should cancel the sweep context")
	}
}

func TestModel_ResetStartsNewGeneration(t *testing.T) {
	m := newTestModel(t)
	oldCtx := m.ctx
	m, _ = update(t, m, progress(0, 1))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("reset should restart the sweep")
	}
	if m.generation != 1 || m.records.Len() != 0 || m.done {
		t.Errorf("reset not applied: gen=%d records=%d", m.generation, m.records.Len())
	}
	if oldCtx.Err() == nil {
		t.Error("previous sweep context should be cancelled")
	}
	m, _ = update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 0})
	if m.done {
		t.Error("cancellation of the previous sweep must not end the new one")
	}
}

func TestModel_ResetChainsGenerations(t *testing.T) {
	m := newTestModel(t)
	first := m.finished
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.after != first {
		t.Error("new sweep should wait for the previous generation")
	}
	if m.finished == first {
		t.Error("new generation needs its own completion channel")
	}
	second := m.finished
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.after != second {
		t.Error("each rerun should wait for the generation it replaces")
	}
}

func TestStartSweepCmd_WaitsForPreviousGeneration(t *testing.T) {
	exec := executor.New(executor.WithSpawner(executor.NewGoroutineSpawner(0)))
	in := orchestration.Inputs{A: matrix.Generate(4, 1), B: matrix.Generate(4, 2), Seed: 1}
	sweep := Sweep{Harness: benchmark.NewHarness(exec), Inputs: in}

	previous := make(chan struct{})
	finished := make(chan struct{})
	cmd := startSweepCmd(context.Background(), &programRef{}, sweep, orchestration.PresentationOptions{}, 1, previous, finished)

	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	select {
	case <-result:
		t.Fatal("sweep ran before the previous generation finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(previous)
	select {
	case msg := <-result:
		done, ok := msg.(SweepCompleteMsg)
		if !ok {
			t.Fatalf("expected SweepCompleteMsg, got %T", msg)
		}
		if done.ExitCode != apperrors.ExitSuccess || done.Generation != 1 {
			t.Errorf("unexpected completion %+v", done)
		}
		if done.Report == nil || len(done.Report.Records) != 3 {
			t.Errorf("expected a report for block sizes 1..3, got %+v", done.Report)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not complete")
	}

	select {
	case <-finished:
	default:
		t.Error("finished should be closed once the sweep returns")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded})
	if cmd == nil || m.exitCode != apperrors.ExitErrorTimeout {
		t.Errorf("deadline should quit with the timeout code, got %d", m.exitCode)
	}
}

func TestLayoutManager(t *testing.T) {
	l := LayoutManager{width: 100, height: 40}
	if l.recordsWidth()+l.rightWidth() != 100 {
		t.Error("panels should span the full width")
	}
	if l.metricsHeight()+l.chartHeight() != l.bodyHeight() {
		t.Error("right column should fill the body height")
	}
	small := LayoutManager{width: 40, height: 3}
	if small.bodyHeight() != minBodyHeight {
		t.Errorf("body height should not drop below %d", minBodyHeight)
	}
}
