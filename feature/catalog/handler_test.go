package catalog_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-cache/core/assets"
	"asset-cache/core/jobs"
	"asset-cache/core/reconcile"
	"asset-cache/core/vfs"
	"asset-cache/feature/catalog"
	"asset-cache/feature/kinds"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	saved map[string][]assets.Row
}

func (s *memStore) Load(ctx context.Context, protocol string) ([]assets.Row, error) {
	return s.saved[protocol], nil
}

func (s *memStore) Save(ctx context.Context, protocol string, rows []assets.Row) error {
	s.saved[protocol] = rows
	return nil
}

type fixture struct {
	app     *fiber.App
	manager *assets.Manager
	store   *memStore
}

func setupApp(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/data/readme.txt", []byte("hello\nworld\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/data/notes/a.txt", []byte("a"), 0o644))
	resolver := vfs.NewResolver(fs)
	resolver.Mount("app", "/app")

	pool, err := jobs.NewPool(jobs.Config{Workers: 2}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Shutdown() })

	store := &memStore{saved: make(map[string][]assets.Row)}
	m := assets.NewManager(pool, assets.Options{Logger: zap.NewNop(), Store: store})
	router := kinds.Register(m, pool, resolver, zap.NewNop())
	engine := reconcile.New(m, resolver, router.KindFor)

	cfg := catalog.Config{Enabled: true, WaitSeconds: 5}
	feature := catalog.NewFeature(cfg, catalog.NewService(m, pool, engine, cfg, zap.NewNop()))
	assert.Equal(t, "catalog", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return &fixture{app: app, manager: m, store: store}
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

func TestHandleLoad(t *testing.T) {
	f := setupApp(t)

	t.Run("wait returns a ready entry", func(t *testing.T) {
		status, body, _ := do(t, f.app, http.MethodPost, "/assets/text/load?key=app:/data/readme.txt&wait=true", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "app:/data/readme.txt", body["key"])
		assert.Equal(t, "readme", body["name"])
		assert.Equal(t, true, body["ready"])
	})

	t.Run("missing key parameter", func(t *testing.T) {
		status, body, _ := do(t, f.app, http.MethodPost, "/assets/text/load", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "key is required", body["error"])
	})

	t.Run("unknown kind", func(t *testing.T) {
		status, _, _ := do(t, f.app, http.MethodPost, "/assets/sound/load?key=app:/data/a.wav", "")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("missing file", func(t *testing.T) {
		status, body, _ := do(t, f.app, http.MethodPost, "/assets/text/load?key=app:/data/missing.txt", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body["error"], "asset not found")
	})
}

func TestHandleListAndEntry(t *testing.T) {
	f := setupApp(t)
	_, err := assets.Load[kinds.Text](f.manager, "app:/data/notes/a.txt", assets.LoadStandard).Wait(context.Background())
	require.NoError(t, err)
	_, err = assets.Load[kinds.Text](f.manager, "app:/data/readme.txt", assets.LoadStandard).Wait(context.Background())
	require.NoError(t, err)

	status, _, raw := do(t, f.app, http.MethodGet, "/assets", "")
	assert.Equal(t, http.StatusOK, status)
	var summaries []catalog.KindSummary
	require.NoError(t, json.Unmarshal(raw, &summaries))
	assert.Contains(t, summaries, catalog.KindSummary{Kind: kinds.KindText, Count: 2})

	status, _, raw = do(t, f.app, http.MethodGet, "/assets/text?group=app:/data/notes", "")
	assert.Equal(t, http.StatusOK, status)
	var entries []assets.Entry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "app:/data/notes/a.txt", entries[0].Key)

	status, body, _ := do(t, f.app, http.MethodGet, "/assets/text/entry?key=app:/data/readme.txt", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "text", body["kind"])

	status, _, _ = do(t, f.app, http.MethodGet, "/assets/text/entry?key=app:/data/nope.txt", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandleRenameAndUnload(t *testing.T) {
	f := setupApp(t)
	h := assets.Load[kinds.Text](f.manager, "app:/data/readme.txt", assets.LoadStandard)
	_, err := h.Wait(context.Background())
	require.NoError(t, err)
	uid := h.UID()

	status, _, _ := do(t, f.app, http.MethodPost, "/assets/text/rename", `{"from":"app:/data/readme.txt","to":"app:/data/README2.txt"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, assets.Find[kinds.Text](f.manager, "app:/data/README2.txt").IsValid())

	row, ok := f.manager.GetMetadata(uid)
	require.True(t, ok)
	assert.Equal(t, "app:/data/README2.txt", row.Location)

	status, _, _ = do(t, f.app, http.MethodPost, "/assets/text/rename", `{"from":"app:/data/readme.txt","to":"app:/data/x.txt"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = do(t, f.app, http.MethodPost, "/assets/text/rename", `{"from":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body, _ := do(t, f.app, http.MethodDelete, "/assets/text?key=app:/data/README2.txt", "")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["unloaded"])
	assert.False(t, assets.Find[kinds.Text](f.manager, "app:/data/README2.txt").IsValid())

	status, _, _ = do(t, f.app, http.MethodDelete, "/assets/text", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandleDatabase(t *testing.T) {
	f := setupApp(t)
	h := assets.Load[kinds.Text](f.manager, "app:/data/readme.txt", assets.LoadStandard)
	uid := h.UID()

	status, _, raw := do(t, f.app, http.MethodGet, "/database/app", "")
	assert.Equal(t, http.StatusOK, status)
	var rows []assets.Row
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, uid, rows[0].UID)
	assert.Equal(t, "text", rows[0].Type)

	status, _, raw = do(t, f.app, http.MethodGet, "/database/engine", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))

	status, body, _ := do(t, f.app, http.MethodGet, "/database/uid/"+uid.String(), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "app:/data/readme.txt", body["location"])

	status, _, _ = do(t, f.app, http.MethodGet, "/database/uid/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = do(t, f.app, http.MethodPost, "/database/app/save", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, f.store.saved["app"], 1)

	status, _, raw = do(t, f.app, http.MethodGet, "/database", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["app"]`, string(raw))
}

func TestHandleReconcile(t *testing.T) {
	f := setupApp(t)
	f.manager.AddAsset("app:/data/gone.txt", assets.Meta{Type: "text"})

	status, _, raw := do(t, f.app, http.MethodGet, "/reconcile/app", "")
	assert.Equal(t, http.StatusOK, status)
	var plan reconcile.ReconcilePlan
	require.NoError(t, json.Unmarshal(raw, &plan))
	assert.Equal(t, 1, plan.Summary.MissingFile)
	assert.Equal(t, 2, plan.Summary.MissingDB)

	status, _, _ = do(t, f.app, http.MethodGet, "/reconcile/app?purge=true&track=true", "")
	assert.Equal(t, http.StatusOK, status)

	var locations []string
	for _, r := range f.manager.DatabaseRows("app") {
		locations = append(locations, r.Location)
	}
	assert.Equal(t, []string{"app:/data/notes/a.txt", "app:/data/readme.txt"}, locations)
}

func TestHandleStats(t *testing.T) {
	f := setupApp(t)

	status, body, _ := do(t, f.app, http.MethodGet, "/jobs/stats", "")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["workers"])
	assert.EqualValues(t, 0, body["running"])
	assert.EqualValues(t, 2, body["idle"])
}
