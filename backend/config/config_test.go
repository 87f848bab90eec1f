package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "NODE_ENV", "PORT", "JWT_SECRET", "JWT_TTL", "AUTH_RATE_LIMIT", "REDIS_DB", "DATABASE_URL"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "5002", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.UsePostgres())
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("AUTH_RATE_LIMIT", "10")
	t.Setenv("REDIS_DB", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigNodeEnvFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("AUTH_RATE_LIMIT", "0")
	t.Setenv("REDIS_DB", "0")
	t.Setenv("NODE_ENV", "Production")
	t.Setenv("DATABASE_URL", "postgresql://user:pw@db:5432/stepup")
	unsetEnv(t, "APP_ENV")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.AuthRateLimit)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDevelopment)
	t.Setenv("REDIS_DB", "0")

	t.Setenv("JWT_TTL", "forever")
	t.Setenv("AUTH_RATE_LIMIT", "10")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_TTL", "24h")
	t.Setenv("AUTH_RATE_LIMIT", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestIsPostgresURL(t *testing.T) {
	assert.True(t, IsPostgresURL("postgres://localhost/db"))
	assert.True(t, IsPostgresURL("postgresql://localhost/db"))
	assert.False(t, IsPostgresURL("stepup_cloud.db"))
	assert.False(t, IsPostgresURL("mysql://localhost/db"))
	assert.False(t, IsPostgresURL(""))
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
