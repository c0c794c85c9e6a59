package benchmark

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/matbench/internal/blockmul"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/executor"
	"github.com/agbru/matbench/internal/logging"
	"github.com/agbru/matbench/internal/matrix"
)

const tracerName = "github.com/agbru/matbench/internal/benchmark"

// Config selects the block sizes to sweep and how each one is measured.
type Config struct {
	// MinBlock and MaxBlock bound the swept block sizes, inclusive.
	// Zero values mean 1 and n-1.
	MinBlock int
	MaxBlock int
	// Repeat is the number of passes per strategy; the fastest is kept.
	Repeat int
	// Verify compares both results against ComputeFull after every size.
	Verify bool
	// LegacyBlockCount reports ⌈n/r⌉·n blocks instead of ⌈n/r⌉².
	LegacyBlockCount bool
	// Seed is the seed the inputs were generated from. It is only copied
	// into the report so a run can be replayed.
	Seed uint64
}

// withDefaults resolves the zero values of c for matrices of order n.
func (c Config) withDefaults(n int) Config {
	if c.MinBlock == 0 {
		c.MinBlock = 1
	}
	if c.MaxBlock == 0 {
		c.MaxBlock = n - 1
	}
	if c.Repeat == 0 {
		c.Repeat = 1
	}
	return c
}

func (c Config) validate() error {
	if c.MinBlock < 1 {
		return apperrors.ValidationError{Field: "min block", Message: fmt.Sprintf("must be at least 1, got %d", c.MinBlock)}
	}
	if c.MaxBlock < 0 {
		return apperrors.ValidationError{Field: "max block", Message: fmt.Sprintf("must not be negative, got %d", c.MaxBlock)}
	}
	if c.Repeat < 1 {
		return apperrors.ValidationError{Field: "repeat", Message: fmt.Sprintf("must be at least 1, got %d", c.Repeat)}
	}
	return nil
}

// Sizes returns the number of block sizes a sweep over order n measures.
func (c Config) Sizes(n int) int {
	c = c.withDefaults(n)
	return max(0, c.MaxBlock-c.MinBlock+1)
}

// ProgressUpdate is sent after every measured block size.
type ProgressUpdate struct {
	// Done is the number of block sizes measured so far, Total the number
	// the sweep will measure.
	Done, Total int
	// Record is the measurement that was just completed.
	Record TimingRecord
}

// Fraction returns Done/Total in [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 1
	}
	return float64(u.Done) / float64(u.Total)
}

// Observer receives every completed record, for example to export metrics.
type Observer interface {
	ObserveRecord(n int, rec TimingRecord)
}

// Harness runs sweeps with a shared Executor.
type Harness struct {
	exec     *executor.Executor
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer
	capacity int
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for sweep events.
func WithLogger(l logging.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithObserver registers o to receive every record.
func WithObserver(o Observer) Option {
	return func(h *Harness) { h.observer = o }
}

// WithTracer replaces the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(h *Harness) { h.tracer = t }
}

// WithCapacity sets the concurrency capacity used when looking for parallel
// slowdowns. It defaults to runtime.NumCPU().
func WithCapacity(n int) Option {
	return func(h *Harness) { h.capacity = n }
}

// NewHarness returns a Harness that multiplies with exec.
func NewHarness(exec *executor.Executor, opts ...Option) *Harness {
	h := &Harness{exec: exec, capacity: runtime.NumCPU()}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logging.NopLogger{}
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(tracerName)
	}
	return h
}

// Run sweeps the block sizes selected by cfg over C = A×B and returns the
// report. Progress is sent on updates when it is not nil; the caller must
// keep receiving until Run returns.
//
// Any error aborts the sweep and no report is returned: a failed pass
// leaves its output undefined, and the durations collected so far describe
// an incomplete experiment.
func (h *Harness) Run(ctx context.Context, a, b matrix.Matrix, cfg Config, updates chan<- ProgressUpdate) (*Report, error) {
	if err := a.Validate("A"); err != nil {
		return nil, err
	}
	if err := b.Validate("B"); err != nil {
		return nil, err
	}
	if b.N != a.N {
		return nil, apperrors.DimensionError{Operand: "B", Want: a.N, Got: b.N}
	}
	n := a.N
	cfg = cfg.withDefaults(n)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ctx, span := h.tracer.Start(ctx, "benchmark.Sweep", trace.WithAttributes(
		attribute.Int("matrix.order", n),
		attribute.Int("block.min", cfg.MinBlock),
		attribute.Int("block.max", cfg.MaxBlock),
		attribute.Int("repeat", cfg.Repeat),
	))
	defer span.End()

	report := &Report{
		N:                n,
		Seed:             cfg.Seed,
		MinBlock:         cfg.MinBlock,
		MaxBlock:         cfg.MaxBlock,
		Repeat:           cfg.Repeat,
		Verified:         cfg.Verify,
		LegacyBlockCount: cfg.LegacyBlockCount,
		StartedAt:        time.Now(),
	}
	if n > matrix.MaxSafeOrder {
		h.logger.Warn("order exceeds the exact int32 range, products may wrap",
			logging.Int("n", n), logging.Int("max_safe_order", matrix.MaxSafeOrder))
	}

	var ref []int32
	if cfg.Verify {
		ref = blockmul.ComputeFull(a.Data, b.Data, n)
	}
	seq, par := matrix.New(n), matrix.New(n)
	total := cfg.Sizes(n)

	for r := cfg.MinBlock; r <= cfg.MaxBlock; r++ {
		if err := ctx.Err(); err != nil {
			return nil, h.fail(span, err)
		}
		rec, err := h.measure(ctx, a, b, seq, par, ref, r, cfg)
		if err != nil {
			return nil, h.fail(span, err)
		}
		report.Records = append(report.Records, rec)
		if h.observer != nil {
			h.observer.ObserveRecord(n, rec)
		}
		h.logger.Debug("block size measured",
			logging.Int("block_size", r),
			logging.Int("blocks", rec.Blocks),
			logging.Duration("sequential", rec.Sequential),
			logging.Duration("parallel", rec.Parallel),
			logging.Float64("speedup", rec.Speedup()))

		if updates != nil {
			select {
			case updates <- ProgressUpdate{Done: len(report.Records), Total: total, Record: rec}:
			case <-ctx.Done():
				return nil, h.fail(span, ctx.Err())
			}
		}
	}
	report.Elapsed = time.Since(report.StartedAt)

	for _, rec := range report.Slowdowns(h.capacity) {
		h.logger.Info("parallel pass slower than sequential",
			logging.Int("block_size", rec.BlockSize),
			logging.Int("blocks", blockmul.Count(n, rec.BlockSize)),
			logging.Int("capacity", h.capacity))
	}
	h.logger.Info("sweep complete",
		logging.Int("n", n),
		logging.Int("sizes", len(report.Records)),
		logging.Duration("elapsed", report.Elapsed))
	return report, nil
}

// measure times both strategies for block size r and, when ref is set,
// checks both results against it.
func (h *Harness) measure(ctx context.Context, a, b, seq, par matrix.Matrix, ref []int32, r int, cfg Config) (TimingRecord, error) {
	n := a.N
	_, span := h.tracer.Start(ctx, "benchmark.BlockSize", trace.WithAttributes(
		attribute.Int("block.size", r),
		attribute.Int("block.count", blockmul.Count(n, r)),
	))
	defer span.End()

	rec := TimingRecord{BlockSize: r, Blocks: blockmul.Count(n, r)}
	if cfg.LegacyBlockCount {
		rec.Blocks = blockmul.LegacyCount(n, r)
	}

	var err error
	if rec.Sequential, err = timePass(h.exec.MultiplySequential, a, b, seq, r, cfg.Repeat); err != nil {
		return rec, h.fail(span, apperrors.WrapError(err, "sequential pass with block size %d", r))
	}
	if rec.Parallel, err = timePass(h.exec.MultiplyParallel, a, b, par, r, cfg.Repeat); err != nil {
		return rec, h.fail(span, apperrors.WrapError(err, "parallel pass with block size %d", r))
	}
	if ref != nil {
		if err := verify(ref, seq, r, executor.StrategySequential); err != nil {
			return rec, h.fail(span, err)
		}
		if err := verify(ref, par, r, executor.StrategyParallel); err != nil {
			return rec, h.fail(span, err)
		}
	}
	span.SetAttributes(attribute.Float64("speedup", rec.Speedup()))
	return rec, nil
}

func (h *Harness) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if apperrors.IsContextError(err) {
		h.logger.Debug("sweep interrupted", logging.String("cause", err.Error()))
	}
	return err
}

type multiplyFunc func(a, b, c matrix.Matrix, r int) error

// timePass runs multiply repeat times on a cleared output and returns the
// fastest wall-clock duration.
func timePass(multiply multiplyFunc, a, b, c matrix.Matrix, r, repeat int) (time.Duration, error) {
	best := time.Duration(math.MaxInt64)
	for range repeat {
		c.Zero()
		start := time.Now()
		if err := multiply(a, b, c, r); err != nil {
			return 0, err
		}
		best = min(best, time.Since(start))
	}
	return best, nil
}

func verify(ref []int32, got matrix.Matrix, r int, strategy string) error {
	if idx := matrix.FirstDifference(ref, got.Data); idx >= 0 {
		e := apperrors.VerificationError{BlockSize: r, Strategy: strategy, Index: idx}
		if idx < len(ref) {
			e.Want = ref[idx]
		}
		if idx < len(got.Data) {
			e.Got = got.Data[idx]
		}
		return e
	}
	return nil
}
