package cmd

import (
	"context"
	"fmt"

	"asset-cache/core/assets"
	"asset-cache/core/config"
	"asset-cache/core/database"
	"asset-cache/core/jobs"
	"asset-cache/core/pack"
	"asset-cache/core/storage"
	"asset-cache/core/vfs"
	"asset-cache/feature/kinds"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wired asset cache shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	pool     *jobs.Pool
	resolver *vfs.Resolver
	db       *gorm.DB
	client   storage.Client
	store    pack.Store
	manager  *assets.Manager
	router   *kinds.Router
}

// newRuntime builds the pool, mounts, database store and manager, then loads
// the persisted database of every mounted protocol.
func newRuntime(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*runtime, error) {
	policy, err := assets.ParseUIDPolicy(cfg.Assets.UIDPolicy)
	if err != nil {
		return nil, err
	}

	resolver, err := vfs.NewFromConfig(afero.NewOsFs(), cfg.VFS)
	if err != nil {
		return nil, fmt.Errorf("failed to mount protocols: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg, resolver: resolver}
	if err := rt.openStore(ctx); err != nil {
		return nil, err
	}

	pool, err := jobs.NewPool(cfg.Jobs, logg.Named("jobs"))
	if err != nil {
		return nil, err
	}
	rt.pool = pool

	rt.manager = assets.NewManager(pool, assets.Options{
		Logger:    logg.Named("assets"),
		Store:     rt.store,
		UIDPolicy: policy,
	})
	rt.router = kinds.Register(rt.manager, pool, resolver, logg.Named("kinds"))

	for _, protocol := range resolver.Protocols() {
		if err := rt.manager.LoadDatabase(ctx, protocol); err != nil {
			_ = pool.Shutdown()
			return nil, fmt.Errorf("failed to load database %s: %w", protocol, err)
		}
		logg.Info("Database loaded",
			zap.String("protocol", protocol),
			zap.Int("assets", len(rt.manager.DatabaseRows(protocol))))
	}
	return rt, nil
}

// openStore connects only the backend selected by cfg.Pack.
func (rt *runtime) openStore(ctx context.Context) error {
	deps := pack.Deps{Files: rt.resolver}

	switch rt.cfg.Pack.Backend {
	case pack.BackendSQL:
		db, err := database.Connect(rt.cfg.Database)
		if err != nil {
			return err
		}
		rt.db = db
		deps.DB = db
	case pack.BackendBucket:
		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.client = client
		deps.Client = client
		deps.Bucket = rt.cfg.Storage.Bucket
	}

	store, err := pack.Open(rt.cfg.Pack, deps)
	if err != nil {
		return err
	}

	switch s := store.(type) {
	case *pack.BucketStore:
		if err := s.EnsureBucket(ctx); err != nil {
			return err
		}
	case *pack.SQLStore:
		if err := s.Verify(ctx); err != nil {
			return err
		}
	}
	rt.store = store
	return nil
}

// Close unloads every asset and drains the pool.
func (rt *runtime) Close() {
	rt.manager.UnloadAll()
	if err := rt.pool.Shutdown(); err != nil {
		rt.logger.Warn("Job pool shutdown failed", zap.Error(err))
	}
}

// loadRuntime reads configuration and builds the runtime.
func loadRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return newRuntime(ctx, cfg, logg)
}
