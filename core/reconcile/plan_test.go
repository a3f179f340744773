package reconcile

import (
	"context"
	"testing"

	"asset-cache/core/assets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMutator struct {
	removed []string
	added   map[string]string
}

func (m *recordingMutator) RemoveAssetInfo(location string) bool {
	m.removed = append(m.removed, location)
	return true
}

func (m *recordingMutator) AddAsset(location string, meta assets.Meta) uuid.UUID {
	if m.added == nil {
		m.added = make(map[string]string)
	}
	m.added[location] = meta.Type
	return uuid.New()
}

func TestReconcileWithPlan(t *testing.T) {
	e, _ := setupEngine(t)
	spec := &Spec{Protocol: "app"}

	t.Run("report only", func(t *testing.T) {
		plan, err := e.ReconcileWithPlan(context.Background(), spec, ReconcileOptions{})
		require.NoError(t, err)
		assert.Equal(t, 6, plan.Summary.TotalItems)
		assert.Equal(t, 1, plan.Summary.MissingFile)
		assert.Equal(t, 3, plan.Summary.MissingDB)
		assert.Equal(t, 1, plan.Summary.Mismatches)
		assert.Empty(t, plan.Actions)
	})

	t.Run("purge and track", func(t *testing.T) {
		plan, err := e.ReconcileWithPlan(context.Background(), spec, ReconcileOptions{DoPurge: true, DoTrack: true})
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Summary.PurgeActions)
		assert.Equal(t, 2, plan.Summary.TrackActions)
		assert.Equal(t, []Action{
			{Type: ActionTrackDB, Key: "app:/data/baked.png", Kind: "image", Reason: "not in database"},
			{Type: ActionTrackDB, Key: "app:/data/new.png", Kind: "image", Reason: "not in database"},
			{Type: ActionDeleteDB, Key: "app:/data/stale.png", Reason: "file missing"},
		}, plan.Actions)
	})
}

func TestApplyPlan(t *testing.T) {
	opts := ReconcileOptions{DoPurge: true, DoTrack: true}

	t.Run("unconfirmed does nothing", func(t *testing.T) {
		e, _ := setupEngine(t)
		m := &recordingMutator{}
		_, executed, err := e.ReconcileAndApply(context.Background(), &Spec{Protocol: "app"}, m, opts)
		require.NoError(t, err)
		assert.Zero(t, executed)
		assert.Empty(t, m.removed)
	})

	t.Run("dry run does nothing", func(t *testing.T) {
		e, _ := setupEngine(t)
		m := &recordingMutator{}
		dry := opts
		dry.Confirmed = true
		dry.DryRun = true
		_, executed, err := e.ReconcileAndApply(context.Background(), &Spec{Protocol: "app"}, m, dry)
		require.NoError(t, err)
		assert.Zero(t, executed)
	})

	t.Run("confirmed applies", func(t *testing.T) {
		e, _ := setupEngine(t)
		m := &recordingMutator{}
		confirmed := opts
		confirmed.Confirmed = true
		_, executed, err := e.ReconcileAndApply(context.Background(), &Spec{Protocol: "app"}, m, confirmed)
		require.NoError(t, err)
		assert.Equal(t, 3, executed)
		assert.Equal(t, []string{"app:/data/stale.png"}, m.removed)
		assert.Equal(t, map[string]string{
			"app:/data/baked.png": "image",
			"app:/data/new.png":   "image",
		}, m.added)
	})
}

func TestApplyPlan_Manager(t *testing.T) {
	m := assets.NewManager(nil, assets.Options{})
	m.AddAsset("app:/data/kept.png", assets.Meta{Type: "image"})
	m.AddAsset("app:/data/gone.png", assets.Meta{Type: "image"})

	files := new(mockFiles)
	files.On("Keys", "app").Return([]string{"app:/data/kept.png", "app:/data/fresh.txt"}, nil)
	e := New(m, files, kindByExt)

	spec := &Spec{Protocol: "app"}
	_, executed, err := e.ReconcileAndApply(context.Background(), spec, m,
		ReconcileOptions{DoPurge: true, DoTrack: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)

	var locations []string
	for _, r := range m.DatabaseRows("app") {
		locations = append(locations, r.Location)
	}
	assert.Equal(t, []string{"app:/data/fresh.txt", "app:/data/kept.png"}, locations)

	plan, err := e.ReconcileWithPlan(context.Background(), spec, ReconcileOptions{DoPurge: true, DoTrack: true})
	require.NoError(t, err)
	assert.Empty(t, plan.Actions)
}
