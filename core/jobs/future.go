package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// TaskID identifies a scheduled task. The zero value means "no task".
type TaskID uint64

var lastTaskID atomic.Uint64

func nextTaskID() TaskID {
	return TaskID(lastTaskID.Add(1))
}

// ErrInvalidFuture is returned when reading a future that was never attached to a task.
var ErrInvalidFuture = errors.New("future has no associated task")

type shared[T any] struct {
	id     TaskID
	pool   *Pool
	done   chan struct{}
	once   sync.Once
	value  T
	err    error
	owners atomic.Int32
}

func newShared[T any](id TaskID, pool *Pool, owners int32) *shared[T] {
	s := &shared[T]{
		id:   id,
		pool: pool,
		done: make(chan struct{}),
	}
	s.owners.Store(owners)
	return s
}

func (s *shared[T]) resolve(value T, err error) {
	s.once.Do(func() {
		s.value = value
		s.err = err
		close(s.done)
	})
}

// Future is a shared handle on the result of a task. Copies observe the same result.
type Future[T any] struct {
	s *shared[T]
}

// Resolved returns a future that is already complete with value.
func Resolved[T any](value T) Future[T] {
	s := newShared[T](nextTaskID(), nil, 1)
	s.resolve(value, nil)
	return Future[T]{s: s}
}

// Failed returns a future that is already complete with err.
func Failed[T any](err error) Future[T] {
	s := newShared[T](nextTaskID(), nil, 1)
	var zero T
	s.resolve(zero, err)
	return Future[T]{s: s}
}

// Valid reports whether the future is attached to a task.
func (f Future[T]) Valid() bool {
	return f.s != nil
}

// ID returns the task id, or zero for an invalid future.
func (f Future[T]) ID() TaskID {
	if f.s == nil {
		return 0
	}
	return f.s.id
}

// IsReady reports whether the task has completed.
func (f Future[T]) IsReady() bool {
	if f.s == nil {
		return false
	}
	select {
	case <-f.s.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed on completion. Nil for an invalid future.
func (f Future[T]) Done() <-chan struct{} {
	if f.s == nil {
		return nil
	}
	return f.s.done
}

// Get blocks until the task completes.
func (f Future[T]) Get() (T, error) {
	if f.s == nil {
		var zero T
		return zero, ErrInvalidFuture
	}
	<-f.s.done
	return f.s.value, f.s.err
}

// Wait blocks until the task completes or ctx is done.
func (f Future[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if f.s == nil {
		return zero, ErrInvalidFuture
	}
	select {
	case <-f.s.done:
		return f.s.value, f.s.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TryGet returns the result without blocking. ok is false while the task is pending.
func (f Future[T]) TryGet() (value T, err error, ok bool) {
	if !f.IsReady() {
		return value, nil, false
	}
	return f.s.value, f.s.err, true
}

// ChangePriority moves the task to another queue if it has not started yet.
func (f Future[T]) ChangePriority(priority Priority) {
	if f.s == nil || f.s.pool == nil || f.IsReady() {
		return
	}
	f.s.pool.ChangePriority(f.s.id, priority)
}

// Share registers an additional owner and returns the same future.
func (f Future[T]) Share() Future[T] {
	if f.s != nil {
		f.s.owners.Add(1)
	}
	return f
}

// Release drops one owner registered by Share or by Schedule.
func (f Future[T]) Release() {
	if f.s != nil {
		f.s.owners.Add(-1)
	}
}

// UseCount returns the number of owners. A pool holds one reference until the task finishes.
func (f Future[T]) UseCount() int {
	if f.s == nil {
		return 0
	}
	return int(f.s.owners.Load())
}
