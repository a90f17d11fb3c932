// Package task runs a function in the background and exposes its result as
// a cancellable future.
package task

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCanceled is returned by Wait when the task was canceled before it
// finished.
var ErrCanceled = errors.New("task canceled")

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusDone     Status = "done"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Task is the handle of a function running in its own goroutine.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status Status
	val    T
	err    error
}

// Go starts fn in a new goroutine. fn receives a context that is canceled
// when ctx is or when Cancel is called.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
		status: StatusPending,
	}

	go func() {
		defer close(t.done)
		defer cancel()

		v, err := fn(ctx)

		t.mu.Lock()
		defer t.mu.Unlock()
		switch {
		case ctx.Err() != nil && (err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
			t.status = StatusCanceled
			t.err = errors.Join(ErrCanceled, ctx.Err())
		case err != nil:
			t.status = StatusFailed
			t.err = err
		default:
			t.status = StatusDone
			t.val = v
		}
	}()
	return t
}

// Wait blocks until the task finishes or ctx is done. A ctx expiring only
// stops the wait; the task keeps running.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel asks the task to stop. It does not wait.
func (t *Task[T]) Cancel() { t.cancel() }

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

func (t *Task[T]) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
