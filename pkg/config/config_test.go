package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/nexcareer")
	t.Setenv("JWT_TTL_MINUTES", "5")
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("RESET_TTL_MINUTES", "")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "")
	t.Setenv("DB_MAX_CONN_LIFETIME_MINUTES", "")
	t.Setenv("HEALTH_TIMEOUT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/nexcareer", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL())
	assert.Equal(t, 60, cfg.RateLimitRequests, "unparsable values keep the default")
	assert.Equal(t, 30*time.Minute, cfg.ResetTTL())
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Zero(t, cfg.DBMinConns)
	assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime())
	assert.Equal(t, 250*time.Millisecond, cfg.HealthTimeout())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
database_url: postgres://yaml/db
redis_url: redis://yaml:6379/0
openrouter:
  model: some/model
  api_key: from-yaml
max_upload_mb: 4
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("OPENROUTER_MODEL", "")
	t.Setenv("OPENROUTER_APP_TITLE", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("OPENROUTER_API_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://yaml/db", cfg.DatabaseURL)
	assert.Equal(t, "redis://yaml:6379/0", cfg.RedisURL)
	assert.Equal(t, "some/model", cfg.OpenRouter.Model)
	assert.Equal(t, "from-env", cfg.OpenRouter.APIKey)
	assert.Equal(t, "NexCareer", cfg.OpenRouter.AppTitle)
	assert.Equal(t, 4, cfg.MaxUploadMB)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.Error(t, err)
}
