package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "GEMINI_API_KEY", "DOCVERIFY_SERVER_PORT", "DOCVERIFY_PARSER_PRIMARY_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, int64(20), cfg.Server.MaxFileSizeMB)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, config.CacheBackendBolt, cfg.Cache.Backend)
	assert.Equal(t, time.Duration(0), cfg.Cache.SweepInterval)
	assert.Equal(t, "gemini", cfg.Parser.Primary.Provider)
	assert.Nil(t, cfg.Parser.SecondaryConfig())
	assert.Equal(t, 120*time.Second, cfg.Workflow.ExtractionTimeout)
	assert.False(t, cfg.Reports.Enabled)
	assert.Equal(t, "reports/", cfg.Reports.Prefix)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCVERIFY_CACHE_ENABLED", "false")
	t.Setenv("DOCVERIFY_CACHE_TTL", "0s")
	t.Setenv("DOCVERIFY_CACHE_BACKEND", "Memory")
	t.Setenv("DOCVERIFY_PARSER_SECONDARY_PROVIDER", "claude")
	t.Setenv("DOCVERIFY_PARSER_SECONDARY_API_KEY", "sk-test")
	t.Setenv("DOCVERIFY_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.Equal(t, config.CacheBackendMemory, cfg.Cache.Backend)
	secondary := cfg.Parser.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "claude", secondary.Provider)
	assert.Equal(t, "sk-test", secondary.APIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoad_LegacyGeminiKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "legacy-key")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.Parser.Primary.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown backend", "DOCVERIFY_CACHE_BACKEND", "redis"},
		{"negative ttl", "DOCVERIFY_CACHE_TTL", "-1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
