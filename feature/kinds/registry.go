package kinds

import (
	"context"
	"io"
	"sort"
	"strings"

	"asset-cache/core/assets"
	"asset-cache/core/jobs"
	"asset-cache/core/utils"

	"go.uber.org/zap"
)

const (
	KindText     = "text"
	KindBinary   = "binary"
	KindImage    = "image"
	KindFont     = "font"
	KindMaterial = "material"
)

// Kind names an asset kind and the extensions routed to it.
type Kind struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// All lists the built-in kinds.
var All = []Kind{
	{Name: KindText, Extensions: TextExtensions},
	{Name: KindBinary, Extensions: BinaryExtensions},
	{Name: KindImage, Extensions: ImageExtensions},
	{Name: KindFont, Extensions: FontExtensions},
	{Name: KindMaterial, Extensions: MaterialExtensions},
}

// Router maps asset keys to kinds by extension.
type Router struct {
	byExt map[string]string
}

// NewRouter indexes the extensions of kinds.
func NewRouter(kinds []Kind) *Router {
	r := &Router{byExt: make(map[string]string)}
	for _, k := range kinds {
		for _, ext := range k.Extensions {
			r.byExt[strings.ToLower(ext)] = k.Name
		}
	}
	return r
}

// KindFor returns the kind of key. Compiled artifacts route as their source.
func (r *Router) KindFor(key string) (string, bool) {
	key, _ = assets.SourceKey(key)
	kind, ok := r.byExt[utils.Extension(key)]
	return kind, ok
}

// Register adds a storage for every built-in kind to m and returns their router.
func Register(m *assets.Manager, pool *jobs.Pool, resolver assets.PathResolver, logger *zap.Logger) *Router {
	router := NewRouter(All)

	assets.AddStorage[Text](m, KindText, assets.NewFileLoader[Text](KindText, pool, resolver, DecodeText, logger))
	assets.AddStorage[Binary](m, KindBinary, assets.NewFileLoader[Binary](KindBinary, pool, resolver, DecodeBinary, logger))
	assets.AddStorage[Image](m, KindImage, assets.NewFileLoader[Image](KindImage, pool, resolver, DecodeImage, logger))
	assets.AddStorage[Font](m, KindFont, NewFontLoader(pool, resolver, logger))
	assets.AddStorage[Material](m, KindMaterial, assets.NewFileLoader[Material](KindMaterial, pool, resolver, materialDecoder(m, router, logger), logger))

	return router
}

// materialDecoder decodes a material and requests the assets it references.
func materialDecoder(m *assets.Manager, router *Router, logger *zap.Logger) assets.DecodeFunc[Material] {
	return func(ctx context.Context, key string, r io.Reader) (*Material, error) {
		mat, err := DecodeMaterial(ctx, key, r)
		if err != nil {
			return nil, err
		}
		for _, dep := range mat.Dependencies() {
			kind, ok := router.KindFor(dep)
			if !ok {
				logger.Debug("Material dependency has no kind", zap.String("material", key), zap.String("dependency", dep))
				continue
			}
			b, ok := m.Binding(kind)
			if !ok {
				continue
			}
			b.Load(dep, assets.LoadStandard)
		}
		return mat, nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
