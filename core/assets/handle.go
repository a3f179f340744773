package assets

import (
	"context"
	"sync"

	"asset-cache/core/jobs"
	"asset-cache/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmptyID is the id of the sentinel handle of every storage.
const EmptyID = "None"

// link is the state shared by every copy of a Handle.
type link[T any] struct {
	mu   sync.RWMutex
	uid  uuid.UUID
	id   string
	name string
	task jobs.Future[*T]
}

// Handle is a cheap, copyable reference to a cached and possibly still loading asset.
// Copies share the same link and observe rename, reload and invalidation.
// The zero Handle behaves like the sentinel.
type Handle[T any] struct {
	l *link[T]
}

func newHandle[T any]() Handle[T] {
	return Handle[T]{l: &link[T]{}}
}

func newEmptyHandle[T any]() Handle[T] {
	return Handle[T]{l: &link[T]{id: EmptyID, name: EmptyID}}
}

// ID returns the key the handle is bound to.
func (h Handle[T]) ID() string {
	if h.l == nil {
		return EmptyID
	}
	h.l.mu.RLock()
	defer h.l.mu.RUnlock()
	return h.l.id
}

// Name returns the file stem of the id.
func (h Handle[T]) Name() string {
	if h.l == nil {
		return EmptyID
	}
	h.l.mu.RLock()
	defer h.l.mu.RUnlock()
	return h.l.name
}

// UID returns the database identity of the asset.
func (h Handle[T]) UID() uuid.UUID {
	if h.l == nil {
		return uuid.Nil
	}
	h.l.mu.RLock()
	defer h.l.mu.RUnlock()
	return h.l.uid
}

func (h Handle[T]) future() jobs.Future[*T] {
	if h.l == nil {
		return jobs.Future[*T]{}
	}
	h.l.mu.RLock()
	defer h.l.mu.RUnlock()
	return h.l.task
}

// IsValid reports whether a load has been attached.
func (h Handle[T]) IsValid() bool {
	return h.future().Valid()
}

// IsReady reports whether the attached load has completed.
func (h Handle[T]) IsReady() bool {
	return h.future().IsReady()
}

// TaskID returns the id of the attached task, zero when there is none.
func (h Handle[T]) TaskID() jobs.TaskID {
	return h.future().ID()
}

// Done returns a channel closed when the attached load completes. Nil when invalid.
func (h Handle[T]) Done() <-chan struct{} {
	return h.future().Done()
}

// Get returns the loaded value.
// When the load is pending and wait is false the zero T is returned immediately.
// When wait is true the task is escalated to high priority and Get blocks.
// A failed load yields the zero T.
func (h Handle[T]) Get(wait bool) T {
	if p := h.GetPtr(wait); p != nil {
		return *p
	}
	var zero T
	return zero
}

// GetPtr is Get returning the shared pointer, nil when no value is available.
func (h Handle[T]) GetPtr(wait bool) *T {
	f := h.future()
	if !f.Valid() {
		return nil
	}
	if !f.IsReady() {
		if !wait {
			return nil
		}
		f.ChangePriority(jobs.PriorityHigh)
	}
	v, err := f.Get()
	if err != nil {
		return nil
	}
	return v
}

// Wait blocks until the load completes or ctx is done and reports the load error.
func (h Handle[T]) Wait(ctx context.Context) (*T, error) {
	f := h.future()
	if !f.Valid() {
		return nil, ErrInvalidHandle
	}
	if !f.IsReady() {
		f.ChangePriority(jobs.PriorityHigh)
	}
	return f.Wait(ctx)
}

// Err returns the load error once the handle is ready.
func (h Handle[T]) Err() error {
	_, err, ok := h.future().TryGet()
	if !ok {
		return nil
	}
	return err
}

// Equal reports whether both handles carry the same identity and validity.
func (h Handle[T]) Equal(other Handle[T]) bool {
	return h.UID() == other.UID() && h.ID() == other.ID() && h.IsValid() == other.IsValid()
}

func (h Handle[T]) setInternalJob(task jobs.Future[*T]) {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	h.l.task = task
}

func (h Handle[T]) setInternalIDs(uid uuid.UUID, id string) {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	h.l.uid = uid
	h.l.id = id
	h.l.name = utils.Stem(id)
}

func (h Handle[T]) setInternalID(id string) {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	h.l.id = id
	h.l.name = utils.Stem(id)
}

// invalidate detaches the task and clears the identity.
func (h Handle[T]) invalidate(logger *zap.Logger) {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()

	if h.l.task.Valid() {
		// the pool still owns a task it could not stop
		if owners := h.l.task.UseCount(); owners > 1 {
			logger.Debug("task leak",
				zap.String("key", h.l.id),
				zap.Uint64("task_id", uint64(h.l.task.ID())),
				zap.Int("owners", owners))
		}
		h.l.task.Release()
	}
	h.l.task = jobs.Future[*T]{}
	h.l.uid = uuid.Nil
	h.l.id = ""
	h.l.name = ""
}
