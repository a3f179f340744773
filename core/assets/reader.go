package assets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"asset-cache/core/jobs"

	"go.uber.org/zap"
)

// CompiledExtension is appended to a source key to name its compiled artifact.
const CompiledExtension = ".asset"

const (
	dataRoot     = ":/data"
	compiledRoot = ":/compiled"
)

// PathResolver answers filesystem questions about asset keys. *vfs.Resolver implements it.
type PathResolver interface {
	HasKnownProtocol(key string) bool
	ResolveProtocol(key string) (string, error)
	Exists(key string) bool
	Open(key string) (io.ReadCloser, error)
}

// CompiledKey returns the key of the compiled artifact of a source key.
// Sources under ":/data" compile into ":/compiled".
func CompiledKey(key string) string {
	return strings.Replace(key+CompiledExtension, dataRoot, compiledRoot, 1)
}

// SourceKey maps a compiled artifact key back to its source key.
// ok is false when key is not a compiled artifact.
func SourceKey(key string) (string, bool) {
	if !strings.HasSuffix(key, CompiledExtension) {
		return key, false
	}
	key = strings.TrimSuffix(key, CompiledExtension)
	return strings.Replace(key, compiledRoot, dataRoot, 1), true
}

// ResolveSource picks the key to read for an asset: its compiled artifact when
// present, the raw source otherwise.
func ResolveSource(resolver PathResolver, key string, logger *zap.Logger) (string, error) {
	if !resolver.HasKnownProtocol(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownProtocol, key)
	}

	compiled := CompiledKey(key)
	if resolver.Exists(compiled) {
		return compiled, nil
	}
	if !resolver.Exists(key) {
		return "", fmt.Errorf("%w: %s", ErrMissingRawAsset, key)
	}

	logger.Warn("Compiled artifact missing, loading raw source",
		zap.String("key", key),
		zap.String("compiled", compiled),
		zap.Error(ErrMissingCompiledArtifact))
	return key, nil
}

// DecodeFunc turns the bytes of an asset into its value.
type DecodeFunc[T any] func(ctx context.Context, key string, r io.Reader) (*T, error)

// FileLoader is a Loader that validates the key synchronously and decodes on the pool.
type FileLoader[T any] struct {
	kind     string
	pool     *jobs.Pool
	resolver PathResolver
	decode   DecodeFunc[T]
	logger   *zap.Logger
}

// NewFileLoader creates a loader for kind.
func NewFileLoader[T any](kind string, pool *jobs.Pool, resolver PathResolver, decode DecodeFunc[T], logger *zap.Logger) *FileLoader[T] {
	return &FileLoader[T]{
		kind:     kind,
		pool:     pool,
		resolver: resolver,
		decode:   decode,
		logger:   logger,
	}
}

// LoadFromFile resolves key and schedules its decoding.
func (l *FileLoader[T]) LoadFromFile(key string) (jobs.Future[*T], error) {
	source, err := ResolveSource(l.resolver, key, l.logger)
	if err != nil {
		return jobs.Future[*T]{}, err
	}

	return jobs.Schedule(l.pool, "load "+l.kind, func(ctx context.Context) (*T, error) {
		r, err := l.resolver.Open(source)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		value, err := l.decode(ctx, key, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", source, err)
		}
		return value, nil
	}), nil
}

// LoadFromInstance wraps an in-memory value.
func (l *FileLoader[T]) LoadFromInstance(value *T) jobs.Future[*T] {
	return jobs.Resolved(value)
}
