package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 6*time.Hour, cfg.Assistant.ModelStackTTL)
	assert.Equal(t, 10, cfg.Assistant.HistoryLimit)
	assert.NotEmpty(t, cfg.Assistant.OfflineMessage)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
db_path: site.db
assistant:
  fallback_models:
    - gemini-2.0-flash
    - gemini-2.0-flash-lite
  history_limit: 4
cache:
  enabled: true
  ttl: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "site.db", cfg.DBPath)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}, cfg.Assistant.FallbackModels)
	assert.Equal(t, 4, cfg.Assistant.HistoryLimit)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	// Untouched fields keep defaults.
	assert.Equal(t, 300*time.Millisecond, cfg.Assistant.RetryBackoff)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	path := writeConfig(t, `
gemini:
  api_key: ${GEMINI_API_KEY}
  preferred_model: ${GEMINI_MODEL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.PreferredModel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
