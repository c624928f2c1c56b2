package models_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"contentfield/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := models.LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultAppConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENTFIELD_ADDRESS", "localhost:9100")
	t.Setenv("CONTENTFIELD_SUGGEST_BASE_URL", "http://suggest.local")
	t.Setenv("CONTENTFIELD_SUGGEST_TIMEOUT", "3s")
	t.Setenv("CONTENTFIELD_SESSION_TTL", "5m")
	t.Setenv("CONTENTFIELD_LOG_LEVEL", "DEBUG")

	cfg, err := models.LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9100", cfg.Address)
	assert.Equal(t, "http://suggest.local", cfg.SuggestBaseURL)
	assert.Equal(t, 3*time.Second, cfg.SuggestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadAppConfigBadDuration(t *testing.T) {
	t.Setenv("CONTENTFIELD_SUGGEST_TIMEOUT", "ten seconds")

	_, err := models.LoadAppConfig()
	assert.Error(t, err)
}

func TestLoadAppConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentfield.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"db_path": "/tmp/other.ddb", "log_level": "warn"}`), 0o600))
	t.Setenv("CONTENTFIELD_CONFIG", path)

	cfg, err := models.LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.ddb", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.AppConfig)
	}{
		{"empty address", func(c *models.AppConfig) { c.Address = "" }},
		{"non-http suggest url", func(c *models.AppConfig) { c.SuggestBaseURL = "ftp://example.com" }},
		{"zero timeout", func(c *models.AppConfig) { c.SuggestTimeout = 0 }},
		{"empty db path", func(c *models.AppConfig) { c.DBPath = "" }},
		{"short secret", func(c *models.AppConfig) { c.JWTSecret = "short" }},
		{"tiny session ttl", func(c *models.AppConfig) { c.SessionTTL = time.Second }},
		{"unknown log level", func(c *models.AppConfig) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultAppConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
