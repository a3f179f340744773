package assets

import "errors"

var (
	// ErrUnknownProtocol is returned when a key references a protocol with no mount.
	ErrUnknownProtocol = errors.New("unknown protocol")
	// ErrMissingCompiledArtifact is logged when the compiled artifact of a key is absent.
	ErrMissingCompiledArtifact = errors.New("compiled artifact missing, falling back to raw source")
	// ErrMissingRawAsset is returned when neither the compiled artifact nor the raw source exist.
	ErrMissingRawAsset = errors.New("raw asset missing")
	// ErrNoLoaderRegistered is logged when loading a kind that has no loader.
	ErrNoLoaderRegistered = errors.New("no loader registered for asset kind")
	// ErrInvalidHandle is returned when waiting on a handle with no attached load.
	ErrInvalidHandle = errors.New("handle has no attached load")
	// ErrNoDatabaseStore is returned by persistence calls on a manager without a store.
	ErrNoDatabaseStore = errors.New("no database store configured")
	// ErrUnknownKind is returned when a kind name has no registered storage.
	ErrUnknownKind = errors.New("unknown asset kind")
)
