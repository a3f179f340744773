package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrNoWorkers is returned when creating a pool with less than one worker.
	ErrNoWorkers = errors.New("attempting to create job pool with less than 1 worker")
	// ErrStopped resolves futures of tasks that were stopped before they ran.
	ErrStopped = errors.New("task stopped before completion")
	// ErrPoolClosed resolves futures scheduled after Shutdown.
	ErrPoolClosed = errors.New("job pool is shut down")
)

type task struct {
	id       TaskID
	name     string
	priority Priority
	ctx      context.Context
	cancel   context.CancelFunc
	run      func(ctx context.Context) error
	abort    func(err error)
	running  bool
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Workers int `json:"workers"`
	Queued  int `json:"queued"`
	Running int `json:"running"`
}

// Pool is a fixed-size priority worker pool.
type Pool struct {
	workers int
	logger  *zap.Logger
	tracer  trace.Tracer

	mu      sync.Mutex
	cond    *sync.Cond
	queues  [priorityCount][]*task
	tasks   map[TaskID]*task
	running int
	closed  bool
	wg      sync.WaitGroup
}

// NewPool creates and starts a pool.
func NewPool(cfg Config, logger *zap.Logger) (*Pool, error) {
	if cfg.Workers <= 0 {
		return nil, ErrNoWorkers
	}
	p := &Pool{
		workers: cfg.Workers,
		logger:  logger,
		tracer:  otel.Tracer("asset-cache/core/jobs"),
		tasks:   make(map[TaskID]*task),
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// Schedule queues fn at normal priority and returns its future.
func Schedule[T any](p *Pool, name string, fn func(ctx context.Context) (T, error)) Future[T] {
	return ScheduleWithPriority(p, name, PriorityNormal, fn)
}

// ScheduleWithPriority queues fn at the given priority and returns its future.
func ScheduleWithPriority[T any](p *Pool, name string, priority Priority, fn func(ctx context.Context) (T, error)) Future[T] {
	// One owner for the pool until the task finishes, one for the returned future.
	s := newShared[T](nextTaskID(), p, 2)

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{
		id:       s.id,
		name:     name,
		priority: priority,
		ctx:      ctx,
		cancel:   cancel,
	}
	t.run = func(ctx context.Context) error {
		defer s.owners.Add(-1)
		value, err := call(ctx, t.id, fn)
		s.resolve(value, err)
		return err
	}
	t.abort = func(err error) {
		defer s.owners.Add(-1)
		var zero T
		s.resolve(zero, err)
	}

	if !p.enqueue(t) {
		cancel()
		t.abort(ErrPoolClosed)
	}
	return Future[T]{s: s}
}

func call[T any](ctx context.Context, id TaskID, fn func(ctx context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %d panicked: %v", id, r)
		}
	}()
	return fn(ctx)
}

func (p *Pool) enqueue(t *task) bool {
	if !t.priority.valid() {
		t.priority = PriorityNormal
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.queues[t.priority] = append(p.queues[t.priority], t)
	p.tasks[t.id] = t
	p.cond.Signal()
	return true
}

// Stop requests cancellation of a task. It reports whether the task was known to the pool.
func (p *Pool) Stop(id TaskID) bool {
	if id == 0 {
		return false
	}
	p.mu.Lock()
	t, ok := p.tasks[id]
	if !ok {
		p.mu.Unlock()
		return false
	}
	if t.running {
		p.mu.Unlock()
		t.cancel()
		return true
	}
	p.removeQueuedLocked(t)
	delete(p.tasks, id)
	p.mu.Unlock()

	t.cancel()
	t.abort(ErrStopped)
	p.logger.Debug("Stopped queued task", zap.Uint64("task_id", uint64(id)), zap.String("task", t.name))
	return true
}

// ChangePriority moves a queued task to another priority band.
func (p *Pool) ChangePriority(id TaskID, priority Priority) bool {
	if !priority.valid() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.tasks[id]
	if !ok || t.running {
		return false
	}
	if t.priority == priority {
		return true
	}
	p.removeQueuedLocked(t)
	t.priority = priority
	p.queues[priority] = append(p.queues[priority], t)
	p.logger.Debug("Changed task priority",
		zap.Uint64("task_id", uint64(id)),
		zap.String("task", t.name),
		zap.Stringer("priority", priority))
	return true
}

// Stats returns the current queue and worker usage.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Workers: p.workers,
		Queued:  p.pendingLocked(),
		Running: p.running,
	}
}

// Shutdown stops accepting work, drains the queues and waits for the workers to exit.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for !p.closed && p.pendingLocked() == 0 {
			p.cond.Wait()
		}
		if p.pendingLocked() == 0 {
			p.mu.Unlock()
			return
		}
		t := p.popLocked()
		t.running = true
		p.running++
		p.mu.Unlock()

		p.execute(t)

		p.mu.Lock()
		delete(p.tasks, t.id)
		p.running--
		p.mu.Unlock()
		t.cancel()
	}
}

func (p *Pool) execute(t *task) {
	ctx, span := p.tracer.Start(t.ctx, t.name, trace.WithAttributes(
		attribute.Int64("task.id", int64(t.id)),
		attribute.String("task.priority", t.priority.String()),
	))
	defer span.End()

	if err := t.run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Debug("Task failed", zap.Uint64("task_id", uint64(t.id)), zap.String("task", t.name), zap.Error(err))
	}
}

func (p *Pool) pendingLocked() int {
	n := 0
	for i := range p.queues {
		n += len(p.queues[i])
	}
	return n
}

func (p *Pool) popLocked() *task {
	for i := priorityCount - 1; i >= 0; i-- {
		if len(p.queues[i]) > 0 {
			t := p.queues[i][0]
			p.queues[i][0] = nil
			p.queues[i] = p.queues[i][1:]
			return t
		}
	}
	return nil
}

func (p *Pool) removeQueuedLocked(t *task) {
	q := p.queues[t.priority]
	for i, queued := range q {
		if queued == t {
			p.queues[t.priority] = append(q[:i], q[i+1:]...)
			return
		}
	}
}
