package pack

import (
	"context"
	"testing"

	"asset-cache/core/assets"
	"asset-cache/core/storage/mocks"
	"asset-cache/core/vfs"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen(t *testing.T) {
	resolver := vfs.NewResolver(afero.NewMemMapFs())

	tests := []struct {
		name    string
		cfg     Config
		deps    Deps
		want    any
		wantErr bool
	}{
		{"DefaultFile", Config{}, Deps{Files: resolver}, &FileStore{}, false},
		{"Bucket", Config{Backend: BackendBucket}, Deps{Client: new(mocks.Client), Bucket: "assets"}, &BucketStore{}, false},
		{"SQL", Config{Backend: BackendSQL}, Deps{DB: &gorm.DB{}}, &SQLStore{}, false},
		{"FileMissing", Config{Backend: BackendFile}, Deps{}, nil, true},
		{"BucketMissing", Config{Backend: BackendBucket}, Deps{}, nil, true},
		{"SQLMissing", Config{Backend: BackendSQL}, Deps{}, nil, true},
		{"Unknown", Config{Backend: "tape"}, Deps{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg, tt.deps)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestFileStore(t *testing.T) {
	resolver := vfs.NewResolver(afero.NewMemMapFs())
	resolver.Mount("app", "/game/app")
	store := NewFileStore(resolver)
	ctx := context.Background()

	rows, err := store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, rows)

	want := []assets.Row{{UID: uuid.New(), Location: "app:/data/a.png", Type: "image"}}
	require.NoError(t, store.Save(ctx, "app", want))
	assert.True(t, resolver.Exists("app:/assets.pack"))

	rows, err = store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, want, rows)

	require.NoError(t, store.Delete(ctx, "app"))
	assert.False(t, resolver.Exists("app:/assets.pack"))
	require.NoError(t, store.Delete(ctx, "app"))

	assert.Error(t, store.Save(ctx, "mods", want))
}

func TestFileStore_WithManager(t *testing.T) {
	resolver := vfs.NewResolver(afero.NewMemMapFs())
	resolver.Mount("app", "/game/app")
	store := NewFileStore(resolver)
	ctx := context.Background()

	m := assets.NewManager(nil, assets.Options{Store: store})
	uid := m.AddAsset("app:/data/a.png", assets.Meta{Type: "image"})
	require.NoError(t, m.SaveDatabase(ctx, "app"))

	fresh := assets.NewManager(nil, assets.Options{Store: store})
	require.NoError(t, fresh.LoadDatabase(ctx, "app"))
	row, ok := fresh.GetMetadata(uid)
	require.True(t, ok)
	assert.Equal(t, "app:/data/a.png", row.Location)
}
