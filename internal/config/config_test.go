// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.TMDB.APIKey = "test-api-key"
	return cfg
}

func TestDefaultsValidateWithAPIKey(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("defaults with API key should validate, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "" },
			wantMsg: "TMDB_API_KEY",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantMsg: "HTTP_PORT",
		},
		{
			name:    "non-http provider url",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "ftp://example.com" },
			wantMsg: "TMDB_BASE_URL",
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.TMDB.Retry.MaxAttempts = 0 },
			wantMsg: "TMDB_RETRY_MAX_ATTEMPTS",
		},
		{
			name:    "retry max below base",
			mutate:  func(c *Config) { c.TMDB.Retry.MaxDelay = c.TMDB.Retry.BaseDelay / 2 },
			wantMsg: "TMDB_RETRY_MAX_DELAY",
		},
		{
			name:    "zero breaker threshold",
			mutate:  func(c *Config) { c.TMDB.Breaker.FailureThreshold = 0 },
			wantMsg: "TMDB_BREAKER_THRESHOLD",
		},
		{
			name:    "empty language list",
			mutate:  func(c *Config) { c.Discovery.Languages = nil },
			wantMsg: "DISCOVERY_LANGUAGES",
		},
		{
			name:    "zero cache capacity",
			mutate:  func(c *Config) { c.Cache.MaxEntries = 0 },
			wantMsg: "CACHE_MAX_ENTRIES",
		},
		{
			name:    "persistent catalog without path",
			mutate:  func(c *Config) { c.Catalog.Path = "" },
			wantMsg: "CATALOG_PATH",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantMsg: "LOG_LEVEL",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantMsg: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	// Config file overrides defaults; env vars override the file.
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
tmdb:
  api_key: from-file
discovery:
  target_catalog_size: 25
cache:
  ttl: 10m
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("DISCOVERY_TARGET_SIZE", "40")
	t.Setenv("DISCOVERY_LANGUAGES", "en, es ,fr")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TMDB.APIKey != "from-file" {
		t.Errorf("expected api key from file, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Discovery.TargetCatalogSize != 40 {
		t.Errorf("env should override file: got target size %d, want 40", cfg.Discovery.TargetCatalogSize)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("expected cache TTL from file, got %v", cfg.Cache.TTL)
	}

	wantLangs := []string{"en", "es", "fr"}
	if len(cfg.Discovery.Languages) != len(wantLangs) {
		t.Fatalf("expected %d languages, got %v", len(wantLangs), cfg.Discovery.Languages)
	}
	for i, lang := range wantLangs {
		if cfg.Discovery.Languages[i] != lang {
			t.Errorf("language[%d] = %q, want %q", i, cfg.Discovery.Languages[i], lang)
		}
	}

	if cfg.Server.Port != 8480 {
		t.Errorf("untouched setting should keep default, got port %d", cfg.Server.Port)
	}
}

func TestLoadMissingAPIKeyFails(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to fail without TMDB_API_KEY")
	}
	if !strings.Contains(err.Error(), "TMDB_API_KEY") {
		t.Errorf("error %q does not mention TMDB_API_KEY", err.Error())
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"HTTP_PORT", "server.port"},
		{"CACHE_TTL", "cache.ttl"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},     // unmapped
		{"HOSTNAME", ""}, // unmapped
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
