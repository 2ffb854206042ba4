package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 10.0, cfg.Google.RateLimit, 0.001)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.InDelta(t, 5000.0, cfg.Search.RadiusMeters, 0.001)
	assert.Equal(t, 3, cfg.Batch.MaxConcurrent)
	assert.Equal(t, 1000, cfg.Batch.DelayMs)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEADSCOUT_GOOGLE_KEY", "env-key")
	t.Setenv("LEADSCOUT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Google.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}

	assert.Error(t, cfg.Validate("search"))
	assert.Error(t, cfg.Validate("ai"))
	assert.Error(t, cfg.Validate("nonsense"))

	cfg.Google.Key = "g-key"
	assert.NoError(t, cfg.Validate("search"))
	assert.Error(t, cfg.Validate("search", "ai"))

	cfg.Anthropic.Key = "a-key"
	assert.NoError(t, cfg.Validate("search", "ai"))
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
