package assets

import (
	"sort"
	"sync"

	"asset-cache/core/jobs"
	"asset-cache/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Executor cancels scheduled tasks. *jobs.Pool implements it.
type Executor interface {
	Stop(id jobs.TaskID) bool
}

// Loader produces the value of an asset kind.
// LoadFromFile runs under the storage lock and must only schedule work.
type Loader[T any] interface {
	LoadFromFile(key string) (jobs.Future[*T], error)
	LoadFromInstance(value *T) jobs.Future[*T]
}

// Storage is the cache of one asset kind, keyed by asset key.
type Storage[T any] struct {
	kind     string
	loader   Loader[T]
	executor Executor
	logger   *zap.Logger
	empty    Handle[T]

	mu        sync.Mutex
	container map[string]Handle[T]
}

func newStorage[T any](kind string, loader Loader[T], executor Executor, logger *zap.Logger) *Storage[T] {
	return &Storage[T]{
		kind:      kind,
		loader:    loader,
		executor:  executor,
		logger:    logger.With(zap.String("kind", kind)),
		empty:     newEmptyHandle[T](),
		container: make(map[string]Handle[T]),
	}
}

// Kind returns the registered kind name.
func (s *Storage[T]) Kind() string {
	return s.kind
}

// Empty returns the sentinel handle of this storage.
func (s *Storage[T]) Empty() Handle[T] {
	return s.empty
}

// Len returns the number of cached entries.
func (s *Storage[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.container)
}

// Keys returns the cached keys in sorted order.
func (s *Storage[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.container))
	for k := range s.container {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnloadWithCondition stops, invalidates and removes every entry matching pred.
// It returns the number of removed entries.
func (s *Storage[T]) UnloadWithCondition(pred func(h Handle[T]) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, h := range s.container {
		if !pred(h) {
			continue
		}
		s.detachLocked(h)
		delete(s.container, key)
		removed++
	}
	if removed > 0 {
		s.logger.Debug("Unloaded assets", zap.Int("count", removed))
	}
	return removed
}

// UnloadAll removes every entry.
func (s *Storage[T]) UnloadAll() int {
	return s.UnloadWithCondition(func(Handle[T]) bool { return true })
}

// UnloadGroup removes every entry whose id starts with prefix.
func (s *Storage[T]) UnloadGroup(prefix string) int {
	return s.UnloadWithCondition(func(h Handle[T]) bool { return utils.HasPrefixFold(h.ID(), prefix) })
}

// UnloadSingle removes the entry bound to key.
func (s *Storage[T]) UnloadSingle(key string) int {
	key = utils.NormalizeKey(key)
	return s.UnloadWithCondition(func(h Handle[T]) bool { return h.ID() == key })
}

// GetWithCondition returns the sentinel followed by every matching handle sorted by id.
func (s *Storage[T]) GetWithCondition(pred func(h Handle[T]) bool) []Handle[T] {
	s.mu.Lock()
	matches := make([]Handle[T], 0, len(s.container))
	for _, h := range s.container {
		if pred(h) {
			matches = append(matches, h)
		}
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID() < matches[j].ID() })
	return append([]Handle[T]{s.empty}, matches...)
}

// GetGroup returns the sentinel followed by every handle whose id starts with prefix.
func (s *Storage[T]) GetGroup(prefix string) []Handle[T] {
	return s.GetWithCondition(func(h Handle[T]) bool { return utils.HasPrefixFold(h.ID(), prefix) })
}

func (s *Storage[T]) find(key string) (Handle[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.container[key]
	return h, ok
}

// load implements the memoized load of key. uid is called only when the entry is (re)bound.
// The returned error is the loader's validation error; the handle is left invalid.
func (s *Storage[T]) load(key string, flags LoadFlags, uid func() uuid.UUID) (Handle[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.container[key]
	if ok && flags != LoadReload && h.IsValid() {
		return h, nil
	}
	if !ok {
		h = newHandle[T]()
		s.container[key] = h
	}
	s.detachLocked(h)
	h.setInternalIDs(uid(), key)

	if s.loader == nil {
		s.logger.Debug("Asset will never become ready", zap.String("key", key), zap.Error(ErrNoLoaderRegistered))
		return h, nil
	}

	task, err := s.loader.LoadFromFile(key)
	if err != nil {
		s.logger.Error("Failed to load asset", zap.String("key", key), zap.Error(err))
		return h, err
	}
	h.setInternalJob(task)
	return h, nil
}

func (s *Storage[T]) loadFromInstance(key string, value *T, uid func() uuid.UUID) Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.container[key]
	if ok && h.IsValid() {
		return h
	}
	if !ok {
		h = newHandle[T]()
		s.container[key] = h
	}
	h.setInternalIDs(uid(), key)

	if s.loader == nil {
		h.setInternalJob(jobs.Resolved(value))
		return h
	}
	h.setInternalJob(s.loader.LoadFromInstance(value))
	return h
}

// rename moves the entry of key to newKey. A displaced entry at newKey is unloaded.
func (s *Storage[T]) rename(key, newKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.container[key]
	if !ok {
		return false
	}
	if key == newKey {
		return true
	}
	if displaced, exists := s.container[newKey]; exists {
		s.detachLocked(displaced)
	}
	delete(s.container, key)
	h.setInternalID(newKey)
	s.container[newKey] = h
	return true
}

func (s *Storage[T]) snapshot() map[string]Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Handle[T], len(s.container))
	for k, h := range s.container {
		out[k] = h
	}
	return out
}

func (s *Storage[T]) detachLocked(h Handle[T]) {
	if id := h.TaskID(); id != 0 && s.executor != nil {
		s.executor.Stop(id)
	}
	h.invalidate(s.logger)
}
