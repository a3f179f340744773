package reconcile

import (
	"asset-cache/core/assets"

	"github.com/google/uuid"
)

// RowSource provides the database rows of a protocol. *assets.Manager implements it.
type RowSource interface {
	DatabaseRows(protocol string) []assets.Row
}

// FileSource lists the files of a protocol. *vfs.Resolver implements it.
type FileSource interface {
	Keys(protocol string) ([]string, error)
}

// Mutator applies planned actions. *assets.Manager implements it.
type Mutator interface {
	RemoveAssetInfo(location string) bool
	AddAsset(location string, meta assets.Meta) uuid.UUID
}

// KindFunc routes a key to its asset kind.
type KindFunc func(key string) (string, bool)
