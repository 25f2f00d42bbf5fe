package input

import (
	"context"
	"log/slog"
	"sync"
)

// Runner executes at most one movement task at a time. Starting a new task
// cancels whatever is in flight, which is how a retreat preempts a slower
// maneuver. Tasks run on their own goroutine so the control loop keeps
// ticking while a long hold plays out.
type Runner struct {
	mu     sync.Mutex
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner() *Runner {
	return &Runner{}
}

// Start cancels the current task, if any, and launches fn under a fresh
// child context of ctx.
func (r *Runner) Start(ctx context.Context, name string, fn func(context.Context) error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.name = name
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		if err := fn(taskCtx); err != nil && taskCtx.Err() == nil {
			slog.Warn("movement task failed", "task", name, "err", err)
		}
	}()
}

// Cancel stops the current task. Idempotent.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Busy reports whether a task is still running.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Active returns the running task's name, or "" when idle.
func (r *Runner) Active() string {
	if !r.Busy() {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// Wait blocks until the current task, if any, finishes.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}
