package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.portal.resio.com", cfg.BaseURL)
	assert.Equal(t, "https://fts-uat.cardconnect.com", cfg.CardConnectURL)
	assert.Equal(t, 30000, cfg.TimeoutMS)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RESIO_BASE_URL", "https://staging.portal.resio.com")
	t.Setenv("RESIO_TIMEOUT_MS", "5000")
	t.Setenv("RESIO_ENVIRONMENT", "Stage")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, "https://staging.portal.resio.com", cfg.BaseURL)
	assert.Equal(t, 5000, cfg.TimeoutMS)
	assert.Equal(t, EnvStage, cfg.Environment)
	assert.Equal(t, string(SourceEnv), cfg.Sources["base_url"])
	assert.Equal(t, string(SourceEnv), cfg.Sources["timeout_ms"])
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("RESIO_TIMEOUT_MS", "not-a-number")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 30000, cfg.TimeoutMS)
}

func TestApplyOverrides(t *testing.T) {
	t.Setenv("RESIO_BASE_URL", "https://from-env.example.com")

	cfg := Default()
	LoadFromEnv(cfg)
	ApplyOverrides(cfg, FlagOverrides{
		BaseURL: "https://from-flag.example.com",
		Timeout: 1000,
	})

	// Flags win over env.
	assert.Equal(t, "https://from-flag.example.com", cfg.BaseURL)
	assert.Equal(t, 1000, cfg.TimeoutMS)
	assert.Equal(t, string(SourceFlag), cfg.Sources["base_url"])
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data, err := json.Marshal(map[string]any{
		"base_url":    "https://file.example.com",
		"timeout_ms":  12000,
		"environment": "development",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
	assert.Equal(t, 12000, cfg.TimeoutMS)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, string(SourceGlobal), cfg.Sources["base_url"])
	// Untouched keys keep defaults.
	assert.Equal(t, "https://fts-uat.cardconnect.com", cfg.CardConnectURL)
}

func TestLoadFromFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	assert.Equal(t, "https://api.portal.resio.com", cfg.BaseURL)
}

func TestSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("base_url", "https://example.com"))
	assert.Equal(t, "https://example.com", cfg.BaseURL)

	require.NoError(t, cfg.Set("timeout_ms", "2500"))
	assert.Equal(t, 2500, cfg.TimeoutMS)

	err := cfg.Set("timeout_ms", "zero")
	assert.Error(t, err)

	err = cfg.Set("nonsense", "value")
	assert.ErrorContains(t, err, "unknown config key")
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.TimeoutMS = 1500
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())
}

func TestIsDev(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsDev())

	cfg.Environment = EnvDevelopment
	assert.True(t, cfg.IsDev())

	cfg.Environment = EnvStage
	assert.True(t, cfg.IsDev())
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeBaseURL("https://example.com/"))
	assert.Equal(t, "https://example.com", NormalizeBaseURL("https://example.com"))
}
