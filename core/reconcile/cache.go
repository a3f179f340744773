package reconcile

import (
	"context"
	"path"
	"sync"
	"time"

	"asset-cache/core/assets"
	"asset-cache/core/pack"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ReconcileCache holds the indices of one protocol.
type ReconcileCache struct {
	// DBIndex maps a location to its row.
	DBIndex map[string]assets.Row

	// FileSet maps a source location to whether it exists only compiled.
	FileSet map[string]bool

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *ReconcileCache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*ReconcileCache
	sf     singleflight.Group
}

func newCacheStore() *cacheStore {
	return &cacheStore{caches: make(map[string]*ReconcileCache)}
}

// BuildCache loads both indices concurrently without storing them.
func (e *Engine) BuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	var (
		dbIndex map[string]assets.Row
		fileSet map[string]bool
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows := e.rows.DatabaseRows(spec.Protocol)
		dbIndex = make(map[string]assets.Row, len(rows))
		for _, r := range rows {
			dbIndex[r.Location] = r
		}
		return nil
	})
	g.Go(func() error {
		keys, err := e.files.Keys(spec.Protocol)
		if err != nil {
			return err
		}
		fileSet = make(map[string]bool, len(keys))
		for _, key := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path.Base(key) == pack.FileName {
				continue
			}
			if source, ok := assets.SourceKey(key); ok {
				if _, raw := fileSet[source]; !raw {
					fileSet[source] = true
				}
				continue
			}
			fileSet[key] = false
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ReconcileCache{
		DBIndex: dbIndex,
		FileSet: fileSet,
		Built:   time.Now(),
		TTL:     spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the cached indices of spec, rebuilding them when expired.
// Concurrent builds of the same protocol are collapsed.
func (e *Engine) GetOrBuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	cacheKey := spec.CacheKey()

	e.cache.mu.RLock()
	cache, exists := e.cache.caches[cacheKey]
	e.cache.mu.RUnlock()
	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := e.cache.sf.Do(cacheKey, func() (interface{}, error) {
		e.cache.mu.RLock()
		cache, exists := e.cache.caches[cacheKey]
		e.cache.mu.RUnlock()
		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := e.BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		e.cache.mu.Lock()
		e.cache.caches[cacheKey] = newCache
		e.cache.mu.Unlock()
		return newCache, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ReconcileCache), nil
}

// InvalidateCache drops the cached indices of spec.
func (e *Engine) InvalidateCache(spec *Spec) {
	e.cache.mu.Lock()
	delete(e.cache.caches, spec.CacheKey())
	e.cache.mu.Unlock()
}
