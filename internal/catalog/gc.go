// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package catalog

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/reelmatch/reelmatch/internal/logging"
)

// GarbageCollector is a supervised service that periodically runs Badger
// value log GC so expired room catalogs release disk space.
type GarbageCollector struct {
	store    *Store
	interval time.Duration
}

// NewGarbageCollector creates a GC service for the given store.
func NewGarbageCollector(s *Store, interval time.Duration) *GarbageCollector {
	return &GarbageCollector{store: s, interval: interval}
}

// Serve implements suture.Service.
func (g *GarbageCollector) Serve(ctx context.Context) error {
	log := logging.WithComponent("catalog-gc")
	log.Debug().Dur("interval", g.interval).Msg("catalog gc started")

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("catalog gc stopping")
			return ctx.Err()
		case <-ticker.C:
			// GC rewrites at most one value log file per call; loop until
			// there is nothing left to reclaim.
			for {
				err := g.store.RunValueLogGC()
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					log.Warn().Err(err).Msg("value log gc failed")
					break
				}
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (g *GarbageCollector) String() string {
	return "catalog-gc"
}
