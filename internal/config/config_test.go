package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	cfg := Load()

	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "88AC1A95756D9259823CCA6E17145A0", cfg.Auth.SecretKey)
	assert.Equal(t, 60*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("GOOGLE_CLIENT_ID", "web-client.apps.googleusercontent.com")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "web-client.apps.googleusercontent.com", cfg.Auth.GoogleClientID)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_BOOL_VAR", "invalid")
	assert.True(t, getEnvBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_INT_VAR", "123")
	assert.Equal(t, 123, getEnvInt("TEST_INT_VAR", 0))

	t.Setenv("TEST_DURATION_VAR", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION_VAR", time.Second))

	t.Setenv("TEST_DURATION_VAR", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TEST_DURATION_VAR", time.Second))

	assert.Equal(t, []string{"x"}, getEnvList("TEST_UNSET_LIST_VAR", []string{"x"}))
}
