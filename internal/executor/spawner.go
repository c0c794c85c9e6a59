//go:generate mockgen -source=spawner.go -destination=mocks/mock_spawner.go -package=mocks

package executor

import (
	"sync/atomic"

	apperrors "github.com/agbru/matbench/internal/errors"
)

// Spawner starts a unit of concurrent work. Spawn returns an error when the
// task could not be started; in that case task is never run.
type Spawner interface {
	Spawn(task func()) error
}

// GoroutineSpawner starts every task on a new goroutine. When MaxTasks is
// positive, it refuses to hold more than MaxTasks tasks in flight at once and
// returns apperrors.ErrTaskLimit instead.
type GoroutineSpawner struct {
	MaxTasks int

	active atomic.Int64
}

// NewGoroutineSpawner returns a spawner limited to maxTasks concurrent tasks
// (0 means unlimited).
func NewGoroutineSpawner(maxTasks int) *GoroutineSpawner {
	return &GoroutineSpawner{MaxTasks: maxTasks}
}

// Spawn runs task on a new goroutine.
func (s *GoroutineSpawner) Spawn(task func()) error {
	if s.MaxTasks > 0 {
		if s.active.Add(1) > int64(s.MaxTasks) {
			s.active.Add(-1)
			return apperrors.ErrTaskLimit
		}
		go func() {
			defer s.active.Add(-1)
			task()
		}()
		return nil
	}
	go task()
	return nil
}

// Active returns the number of tasks currently tracked against MaxTasks.
// It is always 0 for an unlimited spawner.
func (s *GoroutineSpawner) Active() int {
	return int(s.active.Load())
}
