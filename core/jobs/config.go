package jobs

// Config holds configuration for the job pool.
type Config struct {
	// Workers is the number of goroutines executing jobs.
	Workers int `mapstructure:"workers" default:"4"`
}
