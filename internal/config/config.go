// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment names recognized by IsDev.
const (
	EnvDevelopment = "development"
	EnvStage       = "stage"
	EnvProduction  = "production"
)

// Config holds the resolved configuration.
type Config struct {
	// API settings
	BaseURL        string `json:"base_url"`
	CardConnectURL string `json:"cardconnect_url"`
	TimeoutMS      int    `json:"timeout_ms"`

	// Environment name: development, stage, or production.
	Environment string `json:"environment"`

	// Cache settings
	CacheDir string `json:"cache_dir"`

	// Output settings
	Format string `json:"format"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// FlagOverrides holds command-line flag values.
type FlagOverrides struct {
	BaseURL  string
	CacheDir string
	Format   string
	Timeout  int
}

// Default returns the default configuration.
func Default() *Config {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}

	return &Config{
		BaseURL:        "https://api.portal.resio.com",
		CardConnectURL: "https://fts-uat.cardconnect.com",
		TimeoutMS:      30000,
		Environment:    EnvProduction,
		CacheDir:       filepath.Join(cacheDir, "resio"),
		Format:         "json",
		Sources:        make(map[string]string),
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > global config file > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	loadFromFile(cfg, globalConfigPath(), SourceGlobal)
	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	return cfg, nil
}

func loadFromFile(cfg *Config, path string, source Source) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return // File doesn't exist, skip
	}

	var fileCfg map[string]any
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return
	}

	if v, ok := fileCfg["base_url"].(string); ok && v != "" {
		cfg.BaseURL = v
		cfg.Sources["base_url"] = string(source)
	}
	if v, ok := fileCfg["cardconnect_url"].(string); ok && v != "" {
		cfg.CardConnectURL = v
		cfg.Sources["cardconnect_url"] = string(source)
	}
	if v, ok := fileCfg["timeout_ms"].(float64); ok && v > 0 {
		cfg.TimeoutMS = int(v)
		cfg.Sources["timeout_ms"] = string(source)
	}
	if v, ok := fileCfg["environment"].(string); ok && v != "" {
		cfg.Environment = strings.ToLower(v)
		cfg.Sources["environment"] = string(source)
	}
	if v, ok := fileCfg["cache_dir"].(string); ok && v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(source)
	}
	if v, ok := fileCfg["format"].(string); ok && v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(source)
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("RESIO_BASE_URL"); v != "" {
		cfg.BaseURL = v
		cfg.Sources["base_url"] = string(SourceEnv)
	}
	if v := os.Getenv("RESIO_CARDCONNECT_URL"); v != "" {
		cfg.CardConnectURL = v
		cfg.Sources["cardconnect_url"] = string(SourceEnv)
	}
	if v := os.Getenv("RESIO_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TimeoutMS = ms
			cfg.Sources["timeout_ms"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("RESIO_ENVIRONMENT"); v != "" {
		cfg.Environment = strings.ToLower(v)
		cfg.Sources["environment"] = string(SourceEnv)
	}
	if v := os.Getenv("RESIO_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(SourceEnv)
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
		cfg.Sources["base_url"] = string(SourceFlag)
	}
	if o.CacheDir != "" {
		cfg.CacheDir = o.CacheDir
		cfg.Sources["cache_dir"] = string(SourceFlag)
	}
	if o.Format != "" {
		cfg.Format = o.Format
		cfg.Sources["format"] = string(SourceFlag)
	}
	if o.Timeout > 0 {
		cfg.TimeoutMS = o.Timeout
		cfg.Sources["timeout_ms"] = string(SourceFlag)
	}
}

// Timeout returns the request timeout as a duration.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutMS) * time.Millisecond
}

// IsDev reports whether the configured environment is a development-like
// environment. Diagnostic endpoint logging is gated on this.
func (cfg *Config) IsDev() bool {
	return cfg.Environment == EnvDevelopment || cfg.Environment == EnvStage
}

// Set updates a single configuration key, returning an error for unknown keys.
func (cfg *Config) Set(key, value string) error {
	switch key {
	case "base_url":
		cfg.BaseURL = value
	case "cardconnect_url":
		cfg.CardConnectURL = value
	case "timeout_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("timeout_ms must be a positive integer, got %q", value)
		}
		cfg.TimeoutMS = ms
	case "environment":
		cfg.Environment = strings.ToLower(value)
	case "cache_dir":
		cfg.CacheDir = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Save persists the configuration to the global config file.
func (cfg *Config) Save() error {
	dir := GlobalConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(globalConfigPath(), data, 0600)
}

func globalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.json")
}

// GlobalConfigDir returns the global config directory path.
func GlobalConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "resio")
}

// NormalizeBaseURL ensures consistent URL format (no trailing slash).
func NormalizeBaseURL(url string) string {
	return strings.TrimSuffix(url, "/")
}
