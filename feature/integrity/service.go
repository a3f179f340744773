package integrity

import (
	"context"
	"errors"

	"asset-cache/core/assets"
	"asset-cache/core/storage"
	"asset-cache/core/vfs"
	"asset-cache/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned by checks whose backend is not in use.
var ErrNotConfigured = errors.New("backend not configured")

// Deps are the components the checks inspect. Client and DB are optional.
type Deps struct {
	Resolver *vfs.Resolver
	Store    assets.DatabaseStore
	Backend  string
	Client   storage.Client
	Bucket   string
	DB       *gorm.DB
}

// Service handles integrity checks.
type Service struct {
	deps   Deps
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(deps Deps, logger *zap.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

// CheckMounts returns the protocols whose mount directory is missing.
func (s *Service) CheckMounts() ([]string, error) {
	return checks.CheckMounts(s.deps.Resolver)
}

// FixMounts creates the missing mount directories.
func (s *Service) FixMounts(missing []string) error {
	return checks.FixMounts(s.deps.Resolver, s.logger, missing)
}

// CheckStore reads every mounted protocol from the database store.
func (s *Service) CheckStore(ctx context.Context) (*checks.StoreReport, error) {
	if s.deps.Store == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckStore(ctx, s.deps.Store, s.deps.Backend, s.deps.Resolver.Protocols()), nil
}

// CheckBucket verifies the object storage bucket.
func (s *Service) CheckBucket(ctx context.Context) error {
	if s.deps.Client == nil {
		return ErrNotConfigured
	}
	return checks.CheckBucket(ctx, s.deps.Client, s.deps.Bucket)
}

// CheckSchema inspects the asset table of the sql backend.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.deps.DB == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckSchema(s.deps.DB)
}
