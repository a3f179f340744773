package kinds

import (
	"context"
	"sort"

	"asset-cache/core/assets"
	"asset-cache/core/jobs"

	"github.com/fzipp/bmfont"
	"go.uber.org/zap"
)

// Font is an AngelCode bitmap font.
type Font struct {
	Face       string   `json:"face"`
	Size       int      `json:"size"`
	LineHeight int      `json:"line_height"`
	Base       int      `json:"base"`
	AtlasW     int      `json:"atlas_w"`
	AtlasH     int      `json:"atlas_h"`
	Glyphs     int      `json:"glyphs"`
	Kernings   int      `json:"kernings"`
	Pages      []string `json:"pages"`
}

// FontExtensions are routed to the font kind.
var FontExtensions = []string{".fnt"}

// FontLoader loads bitmap fonts. Page images are resolved next to the
// descriptor, so fonts are read from the resolved OS path.
type FontLoader struct {
	pool     *jobs.Pool
	resolver assets.PathResolver
	logger   *zap.Logger
}

// NewFontLoader creates the loader of the font kind.
func NewFontLoader(pool *jobs.Pool, resolver assets.PathResolver, logger *zap.Logger) *FontLoader {
	return &FontLoader{pool: pool, resolver: resolver, logger: logger}
}

func (l *FontLoader) LoadFromFile(key string) (jobs.Future[*Font], error) {
	source, err := assets.ResolveSource(l.resolver, key, l.logger)
	if err != nil {
		return jobs.Future[*Font]{}, err
	}
	path, err := l.resolver.ResolveProtocol(source)
	if err != nil {
		return jobs.Future[*Font]{}, err
	}

	return jobs.Schedule(l.pool, "load font", func(ctx context.Context) (*Font, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		font, err := bmfont.Load(path)
		if err != nil {
			return nil, err
		}
		d := font.Descriptor
		pages := make([]string, 0, len(d.Pages))
		for _, p := range d.Pages {
			pages = append(pages, p.File)
		}
		sort.Strings(pages)
		return &Font{
			Face:       d.Info.Face,
			Size:       int(d.Info.Size),
			LineHeight: int(d.Common.LineHeight),
			Base:       int(d.Common.Base),
			AtlasW:     int(d.Common.ScaleW),
			AtlasH:     int(d.Common.ScaleH),
			Glyphs:     len(d.Chars),
			Kernings:   len(d.Kerning),
			Pages:      pages,
		}, nil
	}), nil
}

func (l *FontLoader) LoadFromInstance(value *Font) jobs.Future[*Font] {
	return jobs.Resolved(value)
}
