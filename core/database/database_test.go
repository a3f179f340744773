package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 3306, User: "cache", Password: "p@ss", Name: "asset_cache", TimeoutSeconds: 3}

	assert.Equal(t,
		"cache:p%40ss@tcp(db:3306)/asset_cache?charset=utf8mb4&parseTime=True&loc=UTC&timeout=3s&readTimeout=3s&writeTimeout=3s",
		cfg.DSN())
	assert.Equal(t, 10*time.Second, Config{}.Timeout())
}

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "asset_cache",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}
