package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, config.BackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, 30*time.Second, cfg.Validators.Timeout)
	assert.Equal(t, "hard", cfg.Validators.DefaultLevel)
	assert.Equal(t, 50, cfg.Jobs.DefaultListLimit)
	assert.False(t, cfg.Validators.Watchlist.Configured())
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIELDCHECK_STORE_BACKEND", "memory")
	t.Setenv("FIELDCHECK_RATE_LIMIT_LIMIT", "10")
	t.Setenv("FIELDCHECK_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("FIELDCHECK_VALIDATORS_WATCHLIST_ENDPOINT", "https://screening.example.com")
	t.Setenv("FIELDCHECK_VALIDATORS_WATCHLIST_API_KEY", "wl-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.Validators.Watchlist.Configured())
	assert.Equal(t, "wl-key", cfg.Validators.Watchlist.APIKey)
	assert.False(t, cfg.UsesPostgres())
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FIELDCHECK_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("FIELDCHECK_STORE_BACKEND", "firestore")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidDefaultLevel(t *testing.T) {
	t.Setenv("FIELDCHECK_VALIDATORS_DEFAULT_LEVEL", "critical")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", d.DSN())
}
