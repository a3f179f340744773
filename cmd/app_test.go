package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"asset-cache/core/assets"
	"asset-cache/core/config"
	"asset-cache/core/pack"
	"asset-cache/feature/kinds"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.VFS.Mounts = "app=" + dir
	cfg.Pack.Backend = pack.BackendFile
	cfg.Jobs.Workers = 2
	cfg.Assets.UIDPolicy = "deterministic"
	return cfg
}

func TestNewRuntime(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "hello.txt"), []byte("hi"), 0o644))

	known := uuid.MustParse("6f1c6c2e-8d4f-4b0a-9a57-0d6c5a3d1e11")
	f, err := os.Create(filepath.Join(dir, pack.FileName))
	require.NoError(t, err)
	require.NoError(t, pack.Encode(f, []assets.Row{{UID: known, Location: "app:/data/hello.txt", Type: kinds.KindText}}))
	require.NoError(t, f.Close())

	ctx := context.Background()
	rt, err := newRuntime(ctx, testConfig(dir), zap.NewNop())
	require.NoError(t, err)

	t.Run("persisted rows are loaded", func(t *testing.T) {
		row, ok := rt.manager.GetMetadata(known)
		require.True(t, ok)
		assert.Equal(t, "app:/data/hello.txt", row.Location)
	})

	t.Run("loads reuse the persisted uid", func(t *testing.T) {
		h := assets.Load[kinds.Text](rt.manager, "app:/data/hello.txt", assets.LoadStandard)
		assert.Equal(t, known, h.UID())
		text, err := h.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hi", text.Body)
	})

	t.Run("preload", func(t *testing.T) {
		rt.cfg.Assets.Preload = "text=app:/data/hello.txt,sound=app:/data/x.wav"
		preload(rt)
		assert.True(t, assets.Find[kinds.Text](rt.manager, "app:/data/hello.txt").IsValid())
	})

	t.Run("save round trip", func(t *testing.T) {
		rt.manager.AddAsset("app:/data/new.txt", assets.Meta{Type: kinds.KindText})
		require.NoError(t, rt.manager.SaveAll(ctx))

		f, err := os.Open(filepath.Join(dir, pack.FileName))
		require.NoError(t, err)
		defer f.Close()
		rows, err := pack.Decode(f)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, known, rows[0].UID)
		assert.Equal(t, "app:/data/new.txt", rows[1].Location)
		assert.Equal(t, assets.NewUIDGenerator(assets.UIDDeterministic).Generate("app:/data/new.txt"), rows[1].UID)
	})

	rt.Close()
}

func TestNewRuntime_Errors(t *testing.T) {
	t.Run("bad uid policy", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.Assets.UIDPolicy = "sequential"
		_, err := newRuntime(context.Background(), cfg, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("bad mounts", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.VFS.Mounts = "app"
		_, err := newRuntime(context.Background(), cfg, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.Pack.Backend = "tape"
		_, err := newRuntime(context.Background(), cfg, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestProtocolOf(t *testing.T) {
	assert.Equal(t, "app", protocolOf(`APP:\data\a.txt`))
	assert.Equal(t, "", protocolOf("no-protocol"))
}
