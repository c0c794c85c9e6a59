package executor

import (
	"fmt"
	"sync"

	"github.com/agbru/matbench/internal/blockmul"
	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/logging"
	"github.com/agbru/matbench/internal/matrix"
	"github.com/agbru/matbench/internal/parallel"
)

// Strategy names used in logs and metrics.
const (
	StrategySequential = "sequential"
	StrategyParallel   = "parallel"
)

// TaskRecorder receives the number of tasks each multiplication pass ran.
type TaskRecorder interface {
	ObserveTasks(strategy string, blockSize, tasks int)
}

// Executor multiplies square matrices block by block.
type Executor struct {
	spawner  Spawner
	logger   logging.Logger
	recorder TaskRecorder
}

// Option configures an Executor.
type Option func(*Executor)

// WithSpawner replaces the default one-goroutine-per-task spawner.
func WithSpawner(s Spawner) Option {
	return func(e *Executor) { e.spawner = s }
}

// WithLogger sets the logger used for pass summaries.
func WithLogger(l logging.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithTaskRecorder reports task counts to r after every pass.
func WithTaskRecorder(r TaskRecorder) Option {
	return func(e *Executor) { e.recorder = r }
}

// New returns an Executor. Without options it spawns one unlimited
// goroutine per block and does not log.
func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.spawner == nil {
		e.spawner = NewGoroutineSpawner(0)
	}
	if e.logger == nil {
		e.logger = logging.NopLogger{}
	}
	return e
}

// MultiplySequential computes C = A×B by running the kernel over every block
// of size r, one after another, on the calling goroutine.
func (e *Executor) MultiplySequential(a, b, c matrix.Matrix, r int) error {
	if err := validate(a, b, c, r); err != nil {
		return err
	}
	n := a.N
	tasks := 0
	for blk := range blockmul.Blocks(n, r) {
		blockmul.ComputeBlock(a.Data, b.Data, c.Data, n, r, blk.Row, blk.Col)
		tasks++
	}
	e.finish(StrategySequential, r, tasks)
	return nil
}

// MultiplyParallel computes C = A×B by launching one task per block of size r
// and waiting for all of them. The ⌈n/r⌉² tasks run in no particular order.
//
// If a task cannot be launched, no further tasks are started; the call waits
// for the ones already running and returns a TaskLaunchError. A task that
// panics is reported the same way. C is incomplete whenever an error is
// returned.
func (e *Executor) MultiplyParallel(a, b, c matrix.Matrix, r int) error {
	if err := validate(a, b, c, r); err != nil {
		return err
	}
	n := a.N

	var (
		wg       sync.WaitGroup
		errs     parallel.ErrorCollector
		launched int
	)
	for blk := range blockmul.Blocks(n, r) {
		wg.Add(1)
		err := e.spawner.Spawn(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					errs.SetError(apperrors.TaskLaunchError{Row: blk.Row, Col: blk.Col, Cause: fmt.Errorf("task panicked: %v", p)})
				}
			}()
			blockmul.ComputeBlock(a.Data, b.Data, c.Data, n, r, blk.Row, blk.Col)
		})
		if err != nil {
			wg.Done()
			errs.SetError(apperrors.TaskLaunchError{Row: blk.Row, Col: blk.Col, Cause: err})
			break
		}
		launched++
	}
	wg.Wait()

	if err := errs.Err(); err != nil {
		e.logger.Error("parallel pass aborted", err,
			logging.Int("block_size", r),
			logging.Int("launched", launched),
			logging.Int("expected", blockmul.Count(n, r)))
		return err
	}
	e.finish(StrategyParallel, r, launched)
	return nil
}

func (e *Executor) finish(strategy string, r, tasks int) {
	if e.recorder != nil {
		e.recorder.ObserveTasks(strategy, r, tasks)
	}
	e.logger.Debug("pass complete",
		logging.String("strategy", strategy),
		logging.Int("block_size", r),
		logging.Int("tasks", tasks))
}

func validate(a, b, c matrix.Matrix, r int) error {
	if err := matrix.ValidateProduct(a, b, c); err != nil {
		return err
	}
	if r < 1 {
		return apperrors.ValidationError{Field: "block size", Message: fmt.Sprintf("must be at least 1, got %d", r)}
	}
	return nil
}
