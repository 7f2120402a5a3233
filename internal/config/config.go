// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	Cache     CacheConfig     `koanf:"cache"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs/RateLimitWindow bound per-client request rates on the
	// catalog endpoint.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// TMDBConfig holds metadata provider connection and resilience settings.
type TMDBConfig struct {
	// BaseURL is the provider API root, without a trailing slash.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates every provider request. Required.
	APIKey string `koanf:"api_key"`

	// ImageBaseURL is prepended to relative poster paths.
	ImageBaseURL string `koanf:"image_base_url"`

	// Language is the preferred metadata language sent with each request.
	Language string `koanf:"language"`

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequestInterval spaces consecutive provider requests process-wide.
	MinRequestInterval time.Duration `koanf:"min_request_interval"`

	Retry   RetryConfig   `koanf:"retry"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// RetryConfig holds exponential backoff settings for retryable provider errors.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	BaseDelay   time.Duration `koanf:"base_delay"`
	Multiplier  float64       `koanf:"multiplier"`
	MaxDelay    time.Duration `koanf:"max_delay"`
}

// BreakerConfig holds circuit breaker settings for the provider client.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	FailureThreshold int `koanf:"failure_threshold"`

	// ResetTimeout is how long the circuit stays open before a probe
	// request is allowed.
	ResetTimeout time.Duration `koanf:"reset_timeout"`

	// MonitoringPeriod is the rolling window over which failure counts
	// reset while the circuit is closed.
	MonitoringPeriod time.Duration `koanf:"monitoring_period"`
}

// DiscoveryConfig holds candidate selection settings.
type DiscoveryConfig struct {
	// TargetCatalogSize is how many candidates a finished batch aims for.
	TargetCatalogSize int `koanf:"target_catalog_size"`

	// MaxPagesPerTier bounds provider page fetches within one tier.
	MaxPagesPerTier int `koanf:"max_pages_per_tier"`

	// MinVoteCount is the provider-side vote count floor sent with
	// discover queries.
	MinVoteCount int `koanf:"min_vote_count"`

	// MinOverviewLength is the quality gate's minimum overview length.
	MinOverviewLength int `koanf:"min_overview_length"`

	// Languages lists accepted original languages.
	Languages []string `koanf:"languages"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	// TTL is how long a cached batch stays fresh.
	TTL time.Duration `koanf:"ttl"`

	// MaxEntries caps the number of cached batches; the oldest entry is
	// evicted when the cap is reached.
	MaxEntries int `koanf:"max_entries"`

	// SweepInterval is how often the background sweeper removes expired
	// entries.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// CatalogConfig holds room catalog store settings.
type CatalogConfig struct {
	// Path is the Badger database directory. Empty selects in-memory mode.
	Path string `koanf:"path"`

	// InMemory runs the store without persistence. Used in tests.
	InMemory bool `koanf:"in_memory"`

	// TTL is how long a stored room catalog survives before Badger
	// expires it.
	TTL time.Duration `koanf:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
