package reconcile

import (
	"context"
	"fmt"
	"sort"

	"asset-cache/core/utils"
)

// Engine compares the asset database against the mounted files.
type Engine struct {
	rows  RowSource
	files FileSource
	kinds KindFunc
	cache *cacheStore
}

// New creates an engine. kinds may be nil, which disables type checks.
func New(rows RowSource, files FileSource, kinds KindFunc) *Engine {
	return &Engine{
		rows:  rows,
		files: files,
		kinds: kinds,
		cache: newCacheStore(),
	}
}

// ReconcileAll returns one result per location found in either source, sorted by key.
func (e *Engine) ReconcileAll(ctx context.Context, spec *Spec) ([]ReconcileResult, error) {
	cache, err := e.GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return e.reconcileFromCache(cache), nil
}

// ReconcileOne returns the result of a single location.
func (e *Engine) ReconcileOne(ctx context.Context, spec *Spec, key string) (*ReconcileResult, error) {
	key = utils.NormalizeKey(key)
	protocol, _, ok := utils.SplitKey(key)
	if !ok || protocol != spec.Protocol {
		return nil, fmt.Errorf("key %s is not under protocol %s", key, spec.Protocol)
	}

	cache, err := e.GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	result := e.buildResult(key, cache)
	return &result, nil
}

func (e *Engine) reconcileFromCache(cache *ReconcileCache) []ReconcileResult {
	union := make(map[string]struct{}, len(cache.DBIndex)+len(cache.FileSet))
	for key := range cache.DBIndex {
		union[key] = struct{}{}
	}
	for key := range cache.FileSet {
		union[key] = struct{}{}
	}

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, e.buildResult(key, cache))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func (e *Engine) buildResult(key string, cache *ReconcileCache) ReconcileResult {
	row, dbPresent := cache.DBIndex[key]
	compiled, filePresent := cache.FileSet[key]

	result := ReconcileResult{
		Key:         key,
		DBPresent:   dbPresent,
		FilePresent: filePresent,
		Compiled:    compiled,
		Mismatch:    []string{},
	}
	if dbPresent {
		result.UID = row.UID
		result.Type = row.Type
	}

	var kind string
	if e.kinds != nil {
		kind, _ = e.kinds(key)
	}
	if !dbPresent {
		result.Type = kind
	}
	if dbPresent && filePresent && kind != "" && row.Type != "" && row.Type != kind {
		result.Mismatch = append(result.Mismatch, fmt.Sprintf("type: db=%s file=%s", row.Type, kind))
	}
	return result
}
