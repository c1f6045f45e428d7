package background

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runner executes fire-and-forget tasks detached from the request that
// scheduled them. Panics and errors are contained inside the task: nothing
// escapes back into the caller. Shutdown drains in-flight tasks with a
// deadline so the process can still exit cleanly.
type Runner struct {
	logger *zap.Logger
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Go schedules fn on its own goroutine. After Shutdown has begun, new tasks
// are dropped with a warning instead of racing the drain.
func (r *Runner) Go(name string, fn func()) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Warn("Background task dropped, runner is shutting down", zap.String("task", name))
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("Background task panicked",
					zap.String("task", name),
					zap.Any("panic", rec),
				)
			}
		}()
		fn()
	}()
}

// Shutdown stops accepting new tasks and waits for in-flight ones until the
// context expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
