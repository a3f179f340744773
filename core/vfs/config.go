package vfs

import (
	"fmt"
	"strings"
)

// Config holds the protocol mounts of the virtual filesystem.
type Config struct {
	// Mounts is a comma separated list of protocol=directory pairs.
	Mounts string `mapstructure:"mounts" default:"app=./app,engine=./engine"`
}

// ParseMounts parses the Mounts setting into a protocol to directory map.
func (c Config) ParseMounts() (map[string]string, error) {
	mounts := make(map[string]string)
	for _, pair := range strings.Split(c.Mounts, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		protocol, dir, ok := strings.Cut(pair, "=")
		protocol = strings.ToLower(strings.TrimSpace(protocol))
		dir = strings.TrimSpace(dir)
		if !ok || protocol == "" || dir == "" {
			return nil, fmt.Errorf("invalid mount %q: expected protocol=directory", pair)
		}
		if _, dup := mounts[protocol]; dup {
			return nil, fmt.Errorf("protocol %q mounted twice", protocol)
		}
		mounts[protocol] = dir
	}
	return mounts, nil
}
