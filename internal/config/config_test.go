package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("YT_API_KEY", "")
	t.Setenv("YT_SEARCH_URL", "")
	t.Setenv("YT_TIMEOUT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.YouTubeAPIKey)
	assert.Equal(t, defaultSearchURL, cfg.YouTubeSearchURL)
	assert.Equal(t, 10*time.Second, cfg.YouTubeTimeout)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("YT_API_KEY", "  AIzaTestKey  ")
	t.Setenv("YT_TIMEOUT", "3s")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "AIzaTestKey", cfg.YouTubeAPIKey)
	assert.Equal(t, 3*time.Second, cfg.YouTubeTimeout)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("YT_TIMEOUT", "soon")
	t.Setenv("MAX_BODY_BYTES", "-5")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.YouTubeTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	t.Run("bad search url", func(t *testing.T) {
		t.Setenv("YT_SEARCH_URL", "not a url")
		t.Setenv("LOG_FORMAT", "")
		_, err := LoadFromEnv()
		assert.ErrorContains(t, err, "YT_SEARCH_URL")
	})

	t.Run("bad log format", func(t *testing.T) {
		t.Setenv("YT_SEARCH_URL", "")
		t.Setenv("LOG_FORMAT", "xml")
		_, err := LoadFromEnv()
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}
