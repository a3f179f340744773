package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		hidden  zapcore.Level
	}{
		{"DebugConsole", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, zapcore.InvalidLevel},
		{"InfoJSON", Config{Level: "info", Format: "json"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"WarnJSON", Config{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"UnknownFallsBackToInfo", Config{Level: "verbose"}, zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.enabled))
			if tt.hidden != zapcore.InvalidLevel {
				assert.False(t, l.Core().Enabled(tt.hidden))
			}
		})
	}
}

func TestWithRayID(t *testing.T) {
	app := fiber.New()
	base := zap.NewNop()

	var withID, withoutID *zap.Logger
	app.Get("/with", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "abc")
		withID = WithRayID(base, c)
		return nil
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		withoutID = WithRayID(base, c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/with", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/without", nil))
	require.NoError(t, err)

	assert.NotSame(t, base, withID)
	assert.Same(t, base, withoutID)
}
