package pack

import (
	"context"
	"errors"
	"fmt"

	"asset-cache/core/assets"
	"asset-cache/core/storage"

	"gorm.io/gorm"
)

const (
	BackendFile   = "file"
	BackendBucket = "bucket"
	BackendSQL    = "sql"
)

// Store is a database store that can also drop a protocol.
type Store interface {
	assets.DatabaseStore
	Delete(ctx context.Context, protocol string) error
}

// Config selects where asset databases are persisted.
type Config struct {
	// Backend is one of file, bucket or sql.
	Backend string `mapstructure:"backend" default:"file"`
	// Prefix is prepended to object names of the bucket backend.
	Prefix string `mapstructure:"prefix" default:"databases/"`
}

// Deps are the backends a Store can be built on. Only the selected one is required.
type Deps struct {
	Files  FileSystem
	Client storage.Client
	Bucket string
	DB     *gorm.DB
}

// Open builds the store selected by cfg.
func Open(cfg Config, deps Deps) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		if deps.Files == nil {
			return nil, errors.New("file backend requires a filesystem")
		}
		return NewFileStore(deps.Files), nil
	case BackendBucket:
		if deps.Client == nil {
			return nil, errors.New("bucket backend requires a storage client")
		}
		return NewBucketStore(deps.Client, deps.Bucket, cfg.Prefix), nil
	case BackendSQL:
		if deps.DB == nil {
			return nil, errors.New("sql backend requires a database connection")
		}
		return NewSQLStore(deps.DB), nil
	default:
		return nil, fmt.Errorf("unknown pack backend %q", cfg.Backend)
	}
}
