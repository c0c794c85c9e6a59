package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/matbench/internal/benchmark"
	"github.com/agbru/matbench/internal/config"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/orchestration"
	"github.com/agbru/matbench/internal/sysmon"
)

// Sweep bundles what the dashboard needs to run, and rerun, a sweep.
type Sweep struct {
	Harness *benchmark.Harness
	Inputs  orchestration.Inputs
	Config  benchmark.Config
}

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	report     *benchmark.Report

	// finished is closed when the current generation's sweep goroutine
	// returns; after is the previous generation's, which the sweep waits on.
	finished chan struct{}
	after    <-chan struct{}
}

// LayoutManager holds terminal dimensions and derives the panel sizes.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 8
	RecordsPanelWidthPercent = 55
	MetricsPanelHeight       = 7
)

func (l LayoutManager) bodyHeight() int {
	return max(minBodyHeight, l.height-headerHeight-footerHeight)
}

func (l LayoutManager) recordsWidth() int {
	return l.width * RecordsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.recordsWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	records RecordsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	sweep     Sweep
	opts      orchestration.PresentationOptions
	ref       *programRef
	paused    bool
	// pending holds progress received while paused, applied on resume.
	pending []ProgressMsg
}

// NewModel creates a dashboard for sweep.
func NewModel(parentCtx context.Context, sweep Sweep, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	km := DefaultKeyMap()
	return Model{
		header:  NewHeaderModel(version, sweep.Inputs.A.N, sweep.Inputs.Seed),
		records: NewRecordsModel(),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(km),
		keymap:  km,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			finished: make(chan struct{}),
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		sweep:     sweep,
		opts:      orchestration.PresentationOptions{Verbose: cfg.Verbose},
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ctx, m.ref, m.sweep, m.opts, m.generation, m.after, m.finished),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if m.paused {
			m.pending = append(m.pending, msg)
			return m, nil
		}
		m.applyProgress(msg)
		return m, nil

	case ReportMsg:
		if msg.Generation == m.generation {
			m.report = msg.Report
		}
		return m, nil

	case IndicatorsMsg:
		if msg.Generation == m.generation {
			m.metrics.UpdateIndicators(msg.Indicators)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.records.AddError(msg.Err)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case SweepCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.flushPending()
		m.done = true
		m.exitCode = msg.ExitCode
		if msg.Report != nil {
			m.report = msg.Report
			if msg.Report.Empty() {
				m.records.AddNote("no block size to measure: the sweep covers 1..n-1")
			}
		}
		m.header.SetDone()
		m.chart.SetDone(m.header.elapsed())
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyProgress(msg ProgressMsg) {
	m.records.AddRecord(msg.Record)
	m.chart.AddDataPoint(msg.Fraction, msg.ETA, msg.Record.Speedup())
	m.metrics.UpdateProgress(msg.Done)
}

func (m *Model) flushPending() {
	for _, p := range m.pending {
		m.applyProgress(p)
	}
	m.pending = nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		if !m.paused {
			m.flushPending()
		}
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		// The cancelled pass still runs until its current block size ends,
		// so the new sweep starts only once it has returned.
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.after, m.finished = m.finished, make(chan struct{})

		m.header.Reset()
		m.records.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.pending = nil
		m.report = nil
		m.exitCode = apperrors.ExitSuccess

		return m, m.startCmds()

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.records.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.records.View(), rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.records.SetSize(m.recordsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run shows the dashboard until the user quits or the context ends. It
// returns the report of the last completed sweep, nil if none completed,
// and the exit code.
func Run(ctx context.Context, sweep Sweep, cfg config.AppConfig, version string) (*benchmark.Report, int) {
	initTUIStyles()

	model := NewModel(ctx, sweep, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// The reference must be set before Run so the sweep goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.ExitCodeFor(ctxErr)
		}
		return nil, apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.report, m.exitCode
	}
	return nil, apperrors.ExitSuccess
}

// startSweepCmd runs the sweep and its presentation through the bridge.
// It waits for after, if set, and closes finished when it returns.
func startSweepCmd(ctx context.Context, ref *programRef, sweep Sweep, opts orchestration.PresentationOptions,
	gen uint64, after <-chan struct{}, finished chan<- struct{}) tea.Cmd {
	return func() tea.Msg {
		defer close(finished)
		if after != nil {
			<-after
		}
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		report, err := orchestration.ExecuteSweep(ctx, sweep.Harness, sweep.Inputs, sweep.Config, reporter, io.Discard)
		if err != nil {
			return SweepCompleteMsg{ExitCode: presenter.HandleError(err, io.Discard), Generation: gen}
		}
		exitCode := orchestration.AnalyzeReport(report, opts, presenter, io.Discard)
		return SweepCompleteMsg{ExitCode: exitCode, Report: report, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for ctx to end.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
