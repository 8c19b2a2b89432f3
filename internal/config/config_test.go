package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 20*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.ClinicTimezone)
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.clinic.example")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.clinic.example, https://admin.clinic.example")
	t.Setenv("RATE_LIMIT_PER_SEC", "2.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.clinic.example", cfg.BackendBaseURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://app.clinic.example", "https://admin.clinic.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitPerSec)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("REDIS_TLS", "yep")

	cfg := Load()

	assert.Equal(t, 20*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.RedisTLS)
}
