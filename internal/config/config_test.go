package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3, cfg.Game.Size)
	assert.Equal(t, "first-available", cfg.Game.BotStrategy)
	assert.Equal(t, RelayMemory, cfg.Relay.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetRedisAddr())
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "criss-cross", cfg.Telemetry.ServiceName)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
http-addr: ":9090"
shutdown-timeout: 2s
allowed-origins:
  - http://localhost:3000
game:
  size: 4
relay:
  backend: redis
redis:
  host: cache
  port: "6380"
telemetry:
  enabled: true
  endpoint: otel-collector:4317
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.Game.Size)
	assert.Equal(t, RelayRedis, cfg.Relay.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.GetRedisAddr())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "game:\n  size: 4\n")
	t.Setenv("GAME_SIZE", "5")
	t.Setenv("RELAY_BACKEND", "redis")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.Size)
	assert.Equal(t, RelayRedis, cfg.Relay.Backend)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"board too small", "game:\n  size: 1\n"},
		{"unknown relay", "relay:\n  backend: kafka\n"},
		{"unknown log level", "log-level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
	})
}
