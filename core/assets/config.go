package assets

import (
	"fmt"
	"strings"
)

// Config holds the asset cache settings.
type Config struct {
	// UIDPolicy is random, deterministic or legacy.
	UIDPolicy string `mapstructure:"uid_policy" default:"random"`
	// Preload is a comma separated list of kind=key pairs loaded at startup.
	Preload string `mapstructure:"preload" default:""`
}

// PreloadEntry names one asset to load at startup.
type PreloadEntry struct {
	Kind string
	Key  string
}

// ParsePreload parses the Preload setting.
func (c Config) ParsePreload() ([]PreloadEntry, error) {
	var out []PreloadEntry
	for _, pair := range strings.Split(c.Preload, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kind, key, ok := strings.Cut(pair, "=")
		kind = strings.TrimSpace(kind)
		key = strings.TrimSpace(key)
		if !ok || kind == "" || key == "" {
			return nil, fmt.Errorf("invalid preload entry %q: expected kind=key", pair)
		}
		out = append(out, PreloadEntry{Kind: kind, Key: key})
	}
	return out, nil
}
