package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-service/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "customer-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "crm")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("POSTGRES_MAX_CONNS", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "crm", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5*time.Second, cfg.App.RequestTimeout())
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "lots")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}
