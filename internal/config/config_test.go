package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "talent-match")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "talent")
	t.Setenv("DB_USER", "talent")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 10*time.Minute, cfg.Matching.CacheTTL)
	assert.Equal(t, 10, cfg.Matching.RecommendationLimit)
	assert.Equal(t, 30*time.Second, cfg.Matching.RunTimeout)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCHING_CACHE_TTL", "30s")
	t.Setenv("MATCHING_RUN_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DB_POOL_MAX_CONNS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Matching.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.Matching.RunTimeout)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_HOST", " ")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoad_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCHING_CACHE_TTL", "ten minutes")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "MATCHING_CACHE_TTL")
}
