package database

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the MySQL connection used by the sql pack backend.
type Config struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"3306"`
	User     string `mapstructure:"user" default:"root"`
	Password string `mapstructure:"password" default:""`
	// Name is the schema holding the asset_database table.
	Name string `mapstructure:"name" default:"asset_cache"`
	// TimeoutSeconds bounds connection setup and every read and write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxOpenConns caps the pool. Databases are saved one protocol at a time, so it stays small.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"4"`
}

// Timeout returns TimeoutSeconds as a duration, 10s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DSN formats the go-sql-driver DSN. The password is URL encoded.
func (c Config) DSN() string {
	secs := int(c.Timeout() / time.Second)
	userInfo := url.UserPassword(c.User, c.Password).String()
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, c.Host, c.Port, c.Name, secs, secs, secs)
}
