// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateDiscovery(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1")
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateTMDB validates metadata provider configuration.
func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.MinRequestInterval < 0 {
		return fmt.Errorf("TMDB_MIN_REQUEST_INTERVAL must not be negative")
	}

	if c.TMDB.Retry.MaxAttempts < 1 {
		return fmt.Errorf("TMDB_RETRY_MAX_ATTEMPTS must be at least 1")
	}
	if c.TMDB.Retry.BaseDelay <= 0 {
		return fmt.Errorf("TMDB_RETRY_BASE_DELAY must be positive")
	}
	if c.TMDB.Retry.Multiplier < 1.0 {
		return fmt.Errorf("TMDB_RETRY_MULTIPLIER must be at least 1.0")
	}
	if c.TMDB.Retry.MaxDelay < c.TMDB.Retry.BaseDelay {
		return fmt.Errorf("TMDB_RETRY_MAX_DELAY must not be below TMDB_RETRY_BASE_DELAY")
	}

	if c.TMDB.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("TMDB_BREAKER_THRESHOLD must be at least 1")
	}
	if c.TMDB.Breaker.ResetTimeout <= 0 {
		return fmt.Errorf("TMDB_BREAKER_RESET must be positive")
	}
	if c.TMDB.Breaker.MonitoringPeriod <= 0 {
		return fmt.Errorf("TMDB_BREAKER_MONITORING must be positive")
	}

	return nil
}

// validateDiscovery validates candidate selection configuration.
func (c *Config) validateDiscovery() error {
	if c.Discovery.TargetCatalogSize < 1 {
		return fmt.Errorf("DISCOVERY_TARGET_SIZE must be at least 1")
	}
	if c.Discovery.MaxPagesPerTier < 1 {
		return fmt.Errorf("DISCOVERY_MAX_PAGES_PER_TIER must be at least 1")
	}
	if c.Discovery.MinVoteCount < 0 {
		return fmt.Errorf("DISCOVERY_MIN_VOTE_COUNT must not be negative")
	}
	if c.Discovery.MinOverviewLength < 0 {
		return fmt.Errorf("DISCOVERY_MIN_OVERVIEW_LENGTH must not be negative")
	}
	if len(c.Discovery.Languages) == 0 {
		return fmt.Errorf("DISCOVERY_LANGUAGES must list at least one language")
	}
	for _, lang := range c.Discovery.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("DISCOVERY_LANGUAGES must not contain empty entries")
		}
	}
	return nil
}

// validateCache validates result cache configuration.
func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// validateCatalog validates room catalog store configuration.
func (c *Config) validateCatalog() error {
	if !c.Catalog.InMemory && c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required unless CATALOG_IN_MEMORY=true")
	}
	if c.Catalog.TTL <= 0 {
		return fmt.Errorf("CATALOG_TTL must be positive")
	}
	return nil
}

// validateLogging validates logging configuration.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a recognized level", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"console\", got %q", c.Logging.Format)
	}

	return nil
}

// validateHTTPURL checks that a URL is http(s) with a host.
func validateHTTPURL(raw, name string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", name)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
