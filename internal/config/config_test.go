package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://localhost:5000/api/")
	t.Setenv("EVENTS_TRANSPORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, "stream", cfg.Events.Transport)
	assert.Equal(t, 5, cfg.Dashboard.TopLimit)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EVENTS_TRANSPORT", "REDIS")
	t.Setenv("DASHBOARD_TOP_LIMIT", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://ops.example.com")
	t.Setenv("AUDIT_DB_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Events.Transport)
	assert.Equal(t, 10, cfg.Dashboard.TopLimit)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Database.Enabled)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a real secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("relative backend url", func(t *testing.T) {
		t.Setenv("BACKEND_API_URL", "/api")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown transport", func(t *testing.T) {
		t.Setenv("EVENTS_TRANSPORT", "carrier-pigeon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestS3Enabled(t *testing.T) {
	assert.False(t, AWSConfig{S3Bucket: "catalog"}.S3Enabled())
	assert.True(t, AWSConfig{AccessKeyID: "key", S3Bucket: "catalog"}.S3Enabled())
}

func TestRateLimitValidation(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	_, err = Load()
	assert.NoError(t, err)
}
