// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package main is the entry point for the ReelMatch discovery server.
//
// ReelMatch builds per-room movie and series catalogs for group voting
// sessions: it discovers candidates from the metadata provider in three
// priority tiers, runs every item through a zero-tolerance quality gate,
// scores and shuffles the survivors, and serves the resulting batch over
// HTTP with result caching and per-room persistence.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Catalog store: Badger (persistent or in-memory)
//  4. Provider client: rate-limited, retrying TMDB client wrapped in a
//     circuit breaker
//  5. Discovery pipeline: engine, scorer, result cache, service
//  6. Supervisor tree: HTTP server plus background maintenance jobs
//
// # Configuration
//
// TMDB_API_KEY is the only required setting. See internal/config for the
// full set of environment variables and their defaults.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the HTTP server drains
// in-flight requests (10s timeout), background jobs stop, and the catalog
// store is flushed and closed.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/reelmatch/reelmatch/internal/cache"
	"github.com/reelmatch/reelmatch/internal/catalog"
	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/discovery"
	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/server"
	"github.com/reelmatch/reelmatch/internal/supervisor"
	"github.com/reelmatch/reelmatch/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("provider_url", cfg.TMDB.BaseURL).
		Str("catalog_path", cfg.Catalog.Path).
		Int("target_catalog_size", cfg.Discovery.TargetCatalogSize).
		Msg("Starting ReelMatch")

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	client := tmdb.NewResilientClient(&cfg.TMDB)
	if err := client.Ping(context.Background()); err != nil {
		// The breaker and fallback catalog cover outages; a failed probe
		// is worth a warning, not a refusal to start.
		logging.Warn().Err(err).Msg("Provider connectivity check failed (will retry on demand)")
	} else {
		logging.Info().Msg("Connected to metadata provider")
	}

	resultCache := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	engine := discovery.NewEngine(client, tmdb.FallbackCandidates, discovery.EngineConfig{
		TargetSize:      cfg.Discovery.TargetCatalogSize,
		MaxPagesPerTier: cfg.Discovery.MaxPagesPerTier,
		MinVoteCount:    cfg.Discovery.MinVoteCount,
		Languages:       cfg.Discovery.Languages,
		Gate: discovery.GateConfig{
			Languages:         cfg.Discovery.Languages,
			MinOverviewLength: cfg.Discovery.MinOverviewLength,
			ImageBaseURL:      cfg.TMDB.ImageBaseURL,
		},
	})
	service := discovery.NewService(engine, resultCache, store, cfg.Discovery.TargetCatalogSize, nil)

	handler := server.NewHandler(service, store, client)
	router := server.NewRouter(handler, server.RouterConfig{
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(cache.NewSweeper(resultCache, cfg.Cache.SweepInterval))
	tree.AddMaintenanceService(catalog.NewGarbageCollector(store, cfg.Catalog.TTL/2))
	tree.AddAPIService(server.NewService(router, cfg.Server))

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Supervisor tree starting")

	if err := tree.Serve(ctx); err != nil && err != context.Canceled {
		logging.Fatal().Err(err).Msg("Supervisor tree terminated")
	}

	logging.Info().Msg("Shutdown complete")
}
