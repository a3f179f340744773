package assets

import (
	"context"

	"asset-cache/core/jobs"
	"asset-cache/core/utils"

	"github.com/google/uuid"
)

// Entry is a point-in-time view of a handle, independent of its value type.
type Entry struct {
	Key    string      `json:"key"`
	Name   string      `json:"name"`
	UID    uuid.UUID   `json:"uid" swaggertype:"string" format:"uuid"`
	Kind   string      `json:"kind"`
	Valid  bool        `json:"valid"`
	Ready  bool        `json:"ready"`
	TaskID jobs.TaskID `json:"task_id,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Binding drives the storage of one kind by name, for callers that cannot name T.
type Binding interface {
	Kind() string
	Load(key string, flags LoadFlags) Entry
	Wait(ctx context.Context, key string) (Entry, error)
	Find(key string) (Entry, bool)
	Rename(key, newKey string) bool
	Unload(key string) int
	UnloadGroup(prefix string) int
	UnloadAll() int
	Entries(group string) []Entry
	Len() int
}

type binding[T any] struct {
	m *Manager
	s *Storage[T]
}

func entryOf[T any](kind string, h Handle[T]) Entry {
	e := Entry{
		Key:    h.ID(),
		Name:   h.Name(),
		UID:    h.UID(),
		Kind:   kind,
		Valid:  h.IsValid(),
		Ready:  h.IsReady(),
		TaskID: h.TaskID(),
	}
	if err := h.Err(); err != nil {
		e.Error = err.Error()
	}
	return e
}

func (b *binding[T]) Kind() string {
	return b.s.kind
}

func (b *binding[T]) Load(key string, flags LoadFlags) Entry {
	return entryOf(b.s.kind, Load[T](b.m, key, flags))
}

// Wait loads key if needed and blocks until the load completes.
func (b *binding[T]) Wait(ctx context.Context, key string) (Entry, error) {
	h := Load[T](b.m, key, LoadStandard)
	_, err := h.Wait(ctx)
	return entryOf(b.s.kind, h), err
}

func (b *binding[T]) Find(key string) (Entry, bool) {
	h, ok := b.s.find(utils.NormalizeKey(key))
	if !ok {
		return Entry{}, false
	}
	return entryOf(b.s.kind, h), true
}

func (b *binding[T]) Rename(key, newKey string) bool {
	return Rename[T](b.m, key, newKey)
}

func (b *binding[T]) Unload(key string) int {
	return Unload[T](b.m, key)
}

func (b *binding[T]) UnloadGroup(prefix string) int {
	return b.s.UnloadGroup(prefix)
}

func (b *binding[T]) UnloadAll() int {
	return b.s.UnloadAll()
}

// Entries lists the handles of group without the sentinel.
func (b *binding[T]) Entries(group string) []Entry {
	handles := b.s.GetGroup(group)[1:]
	out := make([]Entry, 0, len(handles))
	for _, h := range handles {
		out = append(out, entryOf(b.s.kind, h))
	}
	return out
}

func (b *binding[T]) Len() int {
	return b.s.Len()
}
