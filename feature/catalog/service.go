package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-cache/core/assets"
	"asset-cache/core/jobs"
	"asset-cache/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAssetNotFound is returned when a key has no cached entry or cannot be loaded.
var ErrAssetNotFound = errors.New("asset not found")

// StatsSource reports the state of the job pool. *jobs.Pool implements it.
type StatsSource interface {
	Stats() jobs.Stats
}

// KindSummary is the number of cached entries of one kind.
type KindSummary struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Service exposes the asset manager to the HTTP layer.
type Service struct {
	manager *assets.Manager
	stats   StatsSource
	engine  *reconcile.Engine
	wait    time.Duration
	logger  *zap.Logger
}

// NewService creates a new catalog service.
func NewService(manager *assets.Manager, stats StatsSource, engine *reconcile.Engine, cfg Config, logger *zap.Logger) *Service {
	wait := time.Duration(cfg.WaitSeconds) * time.Second
	if wait <= 0 {
		wait = 30 * time.Second
	}
	return &Service{
		manager: manager,
		stats:   stats,
		engine:  engine,
		wait:    wait,
		logger:  logger,
	}
}

func (s *Service) binding(kind string) (assets.Binding, error) {
	b, ok := s.manager.Binding(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", assets.ErrUnknownKind, kind)
	}
	return b, nil
}

// Kinds lists every registered kind with its entry count.
func (s *Service) Kinds() []KindSummary {
	bindings := s.manager.Bindings()
	out := make([]KindSummary, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, KindSummary{Kind: b.Kind(), Count: b.Len()})
	}
	return out
}

// Entries lists the cached entries of kind under group.
func (s *Service) Entries(kind, group string) ([]assets.Entry, error) {
	b, err := s.binding(kind)
	if err != nil {
		return nil, err
	}
	return b.Entries(group), nil
}

// Entry returns the cached entry of key.
func (s *Service) Entry(kind, key string) (assets.Entry, error) {
	b, err := s.binding(kind)
	if err != nil {
		return assets.Entry{}, err
	}
	e, ok := b.Find(key)
	if !ok {
		return assets.Entry{}, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return e, nil
}

// Load requests key. With wait it blocks until the load settles or the wait bound elapses.
func (s *Service) Load(ctx context.Context, kind, key string, reload, wait bool) (assets.Entry, error) {
	b, err := s.binding(kind)
	if err != nil {
		return assets.Entry{}, err
	}

	flags := assets.LoadStandard
	if reload {
		flags = assets.LoadReload
	}
	e := b.Load(key, flags)
	if !e.Valid {
		return e, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	if !wait {
		return e, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	return b.Wait(ctx, key)
}

// Rename moves the entry of kind from key to newKey along with its database rows.
func (s *Service) Rename(kind, key, newKey string) error {
	b, err := s.binding(kind)
	if err != nil {
		return err
	}
	if !b.Rename(key, newKey) {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return nil
}

// Unload drops key, or every entry under group when key is empty.
func (s *Service) Unload(kind, key, group string) (int, error) {
	b, err := s.binding(kind)
	if err != nil {
		return 0, err
	}
	if key != "" {
		return b.Unload(key), nil
	}
	return b.UnloadGroup(group), nil
}

// DatabaseRows returns the rows of protocol.
func (s *Service) DatabaseRows(protocol string) []assets.Row {
	return s.manager.DatabaseRows(protocol)
}

// Metadata looks up a row by UID across the manager chain.
func (s *Service) Metadata(uid uuid.UUID) (assets.Row, bool) {
	return s.manager.GetMetadata(uid)
}

// SaveDatabase persists the database of protocol.
func (s *Service) SaveDatabase(ctx context.Context, protocol string) error {
	return s.manager.SaveDatabase(ctx, protocol)
}

// Reconcile reports the database of protocol against its files.
func (s *Service) Reconcile(ctx context.Context, protocol string, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, error) {
	spec := &reconcile.Spec{Protocol: protocol}
	plan, executed, err := s.engine.ReconcileAndApply(ctx, spec, s.manager, opts)
	if err != nil {
		return nil, err
	}
	if executed > 0 {
		s.logger.Info("Reconcile applied",
			zap.String("protocol", protocol),
			zap.Int("executed", executed))
	}
	return plan, nil
}

// Stats returns the job pool state.
func (s *Service) Stats() jobs.Stats {
	return s.stats.Stats()
}

// Protocols lists the protocols that own a database.
func (s *Service) Protocols() []string {
	return s.manager.Protocols()
}
