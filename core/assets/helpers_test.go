package assets

import (
	"context"
	"sync/atomic"
	"testing"

	"asset-cache/core/jobs"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type texture struct {
	Key   string
	Width int
}

// stubLoader counts loads and optionally holds every task until gate is closed.
type stubLoader struct {
	pool         *jobs.Pool
	calls        atomic.Int32
	gate         chan struct{}
	started      chan string
	ignoreCancel bool
}

func newStubLoader(pool *jobs.Pool) *stubLoader {
	return &stubLoader{
		pool:    pool,
		started: make(chan string, 64),
	}
}

func (l *stubLoader) hold() func() {
	gate := make(chan struct{})
	l.gate = gate
	return func() { close(gate) }
}

func (l *stubLoader) LoadFromFile(key string) (jobs.Future[*texture], error) {
	l.calls.Add(1)
	gate := l.gate
	return jobs.Schedule(l.pool, "stub "+key, func(ctx context.Context) (*texture, error) {
		l.started <- key
		if gate != nil {
			if l.ignoreCancel {
				<-gate
			} else {
				select {
				case <-gate:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}
		return &texture{Key: key, Width: 64}, nil
	}), nil
}

func (l *stubLoader) LoadFromInstance(value *texture) jobs.Future[*texture] {
	return jobs.Resolved(value)
}

func newTestPool(t *testing.T, workers int) *jobs.Pool {
	t.Helper()
	pool, err := jobs.NewPool(jobs.Config{Workers: workers}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Shutdown() })
	return pool
}

func setupManager(t *testing.T, workers int) (*Manager, *stubLoader) {
	t.Helper()
	pool := newTestPool(t, workers)
	m := NewManager(pool, Options{Logger: zap.NewNop()})
	loader := newStubLoader(pool)
	AddStorage[texture](m, "texture", loader)
	return m, loader
}

func ids[T any](handles []Handle[T]) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, h.ID())
	}
	return out
}
