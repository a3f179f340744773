// Package config provides configuration management for the asset cache.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP listener, API key, shutdown bound
//   - Log: logging level and format
//   - Jobs: worker pool size
//   - Assets: UID policy and preload list
//   - VFS: protocol mounts (VFS_MOUNTS=app=./app,engine=./engine)
//   - Pack: database persistence backend (file, bucket or sql)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: MySQL connection details
//   - Watcher: hot reload toggle and debounce
//   - Catalog: HTTP catalog toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
