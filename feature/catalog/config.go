package catalog

// Config holds configuration for the HTTP catalog.
type Config struct {
	// Enabled mounts the catalog routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// WaitSeconds bounds a load request that waits for completion.
	WaitSeconds int `mapstructure:"wait_seconds" default:"30"`
}
