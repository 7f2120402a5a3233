// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These are
// overridden by config file values and environment variables in that order.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			Timeout:         30 * time.Second,
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:            "https://api.themoviedb.org/3",
			APIKey:             "",
			ImageBaseURL:       "https://image.tmdb.org/t/p/w500",
			Language:           "es-ES",
			Timeout:            10 * time.Second,
			MinRequestInterval: 250 * time.Millisecond,
			Retry: RetryConfig{
				MaxAttempts: 3,
				BaseDelay:   500 * time.Millisecond,
				Multiplier:  2.0,
				MaxDelay:    5 * time.Second,
			},
			Breaker: BreakerConfig{
				FailureThreshold: 5,
				ResetTimeout:     60 * time.Second,
				MonitoringPeriod: 120 * time.Second,
			},
		},
		Discovery: DiscoveryConfig{
			TargetCatalogSize: 50,
			MaxPagesPerTier:   3,
			MinVoteCount:      50,
			MinOverviewLength: 20,
			Languages:         []string{"en", "es"},
		},
		Cache: CacheConfig{
			TTL:           30 * time.Minute,
			MaxEntries:    100,
			SweepInterval: 5 * time.Minute,
		},
		Catalog: CatalogConfig{
			Path:     "/data/catalog",
			InMemory: false,
			TTL:      24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (if one exists)
//  3. Environment Variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port, etc.
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars come in as strings; split known slice fields on commas.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices when set from the environment.
var sliceConfigPaths = []string{
	"discovery.languages",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// state cannot pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":         "server.host",
		"http_port":         "server.port",
		"http_timeout":      "server.timeout",
		"rate_limit_reqs":   "server.rate_limit_reqs",
		"rate_limit_window": "server.rate_limit_window",

		// Provider mappings
		"tmdb_base_url":             "tmdb.base_url",
		"tmdb_api_key":              "tmdb.api_key",
		"tmdb_image_base_url":       "tmdb.image_base_url",
		"tmdb_language":             "tmdb.language",
		"tmdb_timeout":              "tmdb.timeout",
		"tmdb_min_request_interval": "tmdb.min_request_interval",
		"tmdb_retry_max_attempts":   "tmdb.retry.max_attempts",
		"tmdb_retry_base_delay":     "tmdb.retry.base_delay",
		"tmdb_retry_multiplier":     "tmdb.retry.multiplier",
		"tmdb_retry_max_delay":      "tmdb.retry.max_delay",
		"tmdb_breaker_threshold":    "tmdb.breaker.failure_threshold",
		"tmdb_breaker_reset":        "tmdb.breaker.reset_timeout",
		"tmdb_breaker_monitoring":   "tmdb.breaker.monitoring_period",

		// Discovery mappings
		"discovery_target_size":         "discovery.target_catalog_size",
		"discovery_max_pages_per_tier":  "discovery.max_pages_per_tier",
		"discovery_min_vote_count":      "discovery.min_vote_count",
		"discovery_min_overview_length": "discovery.min_overview_length",
		"discovery_languages":           "discovery.languages",

		// Cache mappings
		"cache_ttl":            "cache.ttl",
		"cache_max_entries":    "cache.max_entries",
		"cache_sweep_interval": "cache.sweep_interval",

		// Catalog store mappings
		"catalog_path":      "catalog.path",
		"catalog_in_memory": "catalog.in_memory",
		"catalog_ttl":       "catalog.ttl",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
