package watcher

import "time"

// Config holds configuration for hot reload.
type Config struct {
	// Enabled starts the watcher with the server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// DebounceMillis is how long events are collected before they are applied.
	DebounceMillis int `mapstructure:"debounce_millis" default:"500"`
	// InitialScan loads every routable file found when the watcher starts.
	InitialScan bool `mapstructure:"initial_scan" default:"false"`
}

// Debounce returns the collection window, defaulting to 500ms.
func (c Config) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
