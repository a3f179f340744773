package integrity

// Config holds configuration for the integrity checks.
type Config struct {
	Enabled bool `mapstructure:"enabled" default:"true"`
}
