package integrity

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"asset-cache/core/assets"
	"asset-cache/core/storage/mocks"
	"asset-cache/core/vfs"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct{}

func (memStore) Load(ctx context.Context, protocol string) ([]assets.Row, error) {
	return []assets.Row{{Location: protocol + ":/a.txt"}}, nil
}

func (memStore) Save(ctx context.Context, protocol string, rows []assets.Row) error {
	return nil
}

func setupTestApp(t *testing.T, deps Deps) *fiber.App {
	t.Helper()
	feature := NewFeature(Config{Enabled: true}, NewService(deps, zap.NewNop()))
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func newResolver() (afero.Fs, *vfs.Resolver) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/app", 0o755)
	resolver := vfs.NewResolver(fs)
	resolver.Mount("app", "/app")
	resolver.Mount("user", "/home/user")
	return fs, resolver
}

func TestHandleMountCheck(t *testing.T) {
	fs, resolver := newResolver()
	app := setupTestApp(t, Deps{Resolver: resolver})

	code, body := get(t, app, "/integrity/mounts")
	assert.Equal(t, 200, code)
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, []any{"user"}, body["missing"])

	code, body = get(t, app, "/integrity/mounts?fix=true")
	assert.Equal(t, 200, code)
	assert.Equal(t, "fixed", body["status"])
	ok, _ := afero.DirExists(fs, "/home/user")
	assert.True(t, ok)
}

func TestHandleStoreCheck(t *testing.T) {
	_, resolver := newResolver()

	t.Run("NotConfigured", func(t *testing.T) {
		app := setupTestApp(t, Deps{Resolver: resolver})
		code, _ := get(t, app, "/integrity/store")
		assert.Equal(t, 503, code)
	})

	t.Run("Rows", func(t *testing.T) {
		app := setupTestApp(t, Deps{Resolver: resolver, Store: memStore{}, Backend: "file"})
		code, body := get(t, app, "/integrity/store")
		assert.Equal(t, 200, code)
		assert.Equal(t, "file", body["backend"])
		assert.Equal(t, map[string]any{"app": float64(1), "user": float64(1)}, body["rows"])
	})
}

func TestHandleBucketCheck(t *testing.T) {
	_, resolver := newResolver()

	t.Run("NotConfigured", func(t *testing.T) {
		app := setupTestApp(t, Deps{Resolver: resolver})
		code, _ := get(t, app, "/integrity/bucket")
		assert.Equal(t, 503, code)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		app := setupTestApp(t, Deps{Resolver: resolver, Client: client, Bucket: "assets"})

		code, body := get(t, app, "/integrity/bucket")
		assert.Equal(t, 500, code)
		assert.Contains(t, body["error"], "does not exist")
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	_, resolver := newResolver()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "assets").Return(true, nil)
	app := setupTestApp(t, Deps{Resolver: resolver, Store: memStore{}, Backend: "bucket", Client: client, Bucket: "assets"})

	code, body := get(t, app, "/integrity")
	assert.Equal(t, 200, code)
	assert.Equal(t, "ok", body["mounts"].(map[string]any)["status"])
	assert.Equal(t, "ok", body["bucket"].(map[string]any)["status"])
	assert.Equal(t, "skipped", body["schema"].(map[string]any)["status"])
	assert.Equal(t, "bucket", body["store"].(map[string]any)["backend"])

	code, _ = get(t, app, "/integrity/schema")
	assert.Equal(t, 503, code)
}
