package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-cache/core/jobs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandle_Zero(t *testing.T) {
	var h Handle[texture]

	assert.Equal(t, EmptyID, h.ID())
	assert.Equal(t, EmptyID, h.Name())
	assert.Equal(t, uuid.Nil, h.UID())
	assert.False(t, h.IsValid())
	assert.False(t, h.IsReady())
	assert.Zero(t, h.TaskID())
	assert.Nil(t, h.Done())
	assert.Nil(t, h.GetPtr(true))
	assert.Equal(t, texture{}, h.Get(true))
	assert.NoError(t, h.Err())
	assert.True(t, h.Equal(newEmptyHandle[texture]()))
}

func TestHandle_Bind(t *testing.T) {
	h := newHandle[texture]()
	uid := uuid.New()

	h.setInternalIDs(uid, "app:/data/textures/hero.png")
	assert.Equal(t, "app:/data/textures/hero.png", h.ID())
	assert.Equal(t, "hero", h.Name())
	assert.Equal(t, uid, h.UID())

	h.setInternalID("app:/data/textures/villain.tga")
	assert.Equal(t, "villain", h.Name())
	assert.Equal(t, uid, h.UID())

	copied := h
	h.setInternalJob(jobs.Resolved(&texture{Width: 2}))
	assert.True(t, copied.IsReady())
	assert.Equal(t, 2, copied.Get(false).Width)
}

func TestHandle_Failure(t *testing.T) {
	boom := errors.New("corrupt header")
	h := newHandle[texture]()
	h.setInternalJob(jobs.Failed[*texture](boom))

	assert.True(t, h.IsReady())
	assert.Nil(t, h.GetPtr(true))
	assert.Equal(t, texture{}, h.Get(true))
	assert.ErrorIs(t, h.Err(), boom)

	_, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestHandle_Invalidate(t *testing.T) {
	h := newHandle[texture]()
	h.setInternalIDs(uuid.New(), "app:/data/a.png")
	h.setInternalJob(jobs.Resolved(&texture{}))
	copied := h

	h.invalidate(zap.NewNop())

	assert.False(t, copied.IsValid())
	assert.Equal(t, "", copied.ID())
	assert.Equal(t, uuid.Nil, copied.UID())
}

func TestHandle_Equal(t *testing.T) {
	uid := uuid.New()
	a := newHandle[texture]()
	a.setInternalIDs(uid, "app:/data/a.png")
	b := newHandle[texture]()
	b.setInternalIDs(uid, "app:/data/a.png")

	assert.True(t, a.Equal(b))

	b.setInternalJob(jobs.Resolved(&texture{}))
	assert.False(t, a.Equal(b))

	c := newHandle[texture]()
	c.setInternalIDs(uuid.New(), "app:/data/a.png")
	assert.False(t, a.Equal(c))
}

func TestHandle_WaitContext(t *testing.T) {
	m, loader := setupManager(t, 1)
	release := loader.hold()
	defer release()

	h := Load[texture](m, "app:/data/slow.png", LoadStandard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, h.IsReady())
}

func TestHandle_BlockingGetEscalatesQueuedLoad(t *testing.T) {
	tests := []struct {
		name string
		get  func(h Handle[texture]) string
	}{
		{"Get", func(h Handle[texture]) string { return h.Get(true).Key }},
		{"GetPtr", func(h Handle[texture]) string { return h.GetPtr(true).Key }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			pool, err := jobs.NewPool(jobs.Config{Workers: 1}, zap.New(core))
			require.NoError(t, err)
			t.Cleanup(func() { _ = pool.Shutdown() })

			m := NewManager(pool, Options{Logger: zap.NewNop()})
			loader := newStubLoader(pool)
			AddStorage[texture](m, "texture", loader)

			release := loader.hold()
			Load[texture](m, "app:/data/busy.png", LoadStandard)
			require.Equal(t, "app:/data/busy.png", <-loader.started)

			first := Load[texture](m, "app:/data/first.png", LoadStandard)
			last := Load[texture](m, "app:/data/last.png", LoadStandard)
			assert.Nil(t, last.GetPtr(false))
			assert.Zero(t, logs.FilterMessage("Changed task priority").Len())

			got := make(chan string, 1)
			go func() { got <- tt.get(last) }()
			require.Eventually(t, func() bool {
				return logs.FilterMessage("Changed task priority").Len() == 1
			}, time.Second, 5*time.Millisecond)

			release()
			assert.Equal(t, "app:/data/last.png", <-loader.started)
			assert.Equal(t, "app:/data/first.png", <-loader.started)
			assert.Equal(t, "app:/data/last.png", <-got)
			assert.Equal(t, "app:/data/first.png", first.Get(true).Key)
		})
	}
}
