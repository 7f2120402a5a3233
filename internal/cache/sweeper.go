// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package cache

import (
	"context"
	"time"

	"github.com/reelmatch/reelmatch/internal/logging"
)

// Sweeper is a supervised service that periodically drops expired cache
// entries so memory is reclaimed even for keys that are never read again.
type Sweeper struct {
	cache    *Cache
	interval time.Duration
}

// NewSweeper creates a sweeper for the given cache.
func NewSweeper(c *Cache, interval time.Duration) *Sweeper {
	return &Sweeper{cache: c, interval: interval}
}

// Serve implements suture.Service. It sweeps on a ticker until the context
// is canceled.
func (s *Sweeper) Serve(ctx context.Context) error {
	log := logging.WithComponent("cache-sweeper")
	log.Debug().Dur("interval", s.interval).Msg("cache sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("cache sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			if removed := s.cache.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *Sweeper) String() string {
	return "cache-sweeper"
}
