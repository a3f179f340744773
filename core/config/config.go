package config

import (
	"reflect"
	"strings"

	"asset-cache/core/assets"
	"asset-cache/core/database"
	"asset-cache/core/jobs"
	"asset-cache/core/logger"
	"asset-cache/core/pack"
	"asset-cache/core/server"
	"asset-cache/core/storage"
	"asset-cache/core/vfs"
	"asset-cache/feature/catalog"
	"asset-cache/feature/integrity"
	"asset-cache/feature/watcher"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Jobs holds configuration for the worker pool.
	Jobs jobs.Config `mapstructure:"jobs"`
	// Assets holds the UID policy and the preload list.
	Assets assets.Config `mapstructure:"assets"`
	// VFS holds the protocol mounts.
	VFS vfs.Config `mapstructure:"vfs"`
	// Pack selects where asset databases are persisted.
	Pack pack.Config `mapstructure:"pack"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Watcher holds configuration for hot reload.
	Watcher watcher.Config `mapstructure:"watcher"`
	// Catalog holds configuration for the HTTP catalog.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Integrity holds configuration for the health checks.
	Integrity integrity.Config `mapstructure:"integrity"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
