// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/reelmatch/reelmatch/internal/cache"
	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// ErrUnknownGenre marks criteria carrying a genre id outside the movie
// taxonomy.
var ErrUnknownGenre = errors.New("unknown genre id")

// BatchStore persists finished room batches. Satisfied by *catalog.Store.
type BatchStore interface {
	StoreBatch(ctx context.Context, roomID string, batch *models.Batch) error
}

// Service is the cache-fronted orchestrator: it validates criteria, checks
// the result cache, runs the discovery engine on a miss, orders the result,
// trims it to the target size, and persists room-scoped batches.
//
// Safe for concurrent use; the engine, cache and store it wraps are shared
// process-wide singletons.
type Service struct {
	engine     *Engine
	cache      *cache.Cache
	store      BatchStore
	targetSize int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService wires the orchestrator. store may be nil when no catalog
// persistence is configured; rng may be nil to use a time-seeded source.
func NewService(engine *Engine, c *cache.Cache, store BatchStore, targetSize int, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		engine:     engine,
		cache:      c,
		store:      store,
		targetSize: targetSize,
		rng:        rng,
	}
}

// BuildCatalog produces the ordered candidate batch for the given criteria.
//
// Cache hits return the stored batch as-is; misses run the full pipeline
// and cache the result only when it came entirely from the live provider,
// so a degraded batch does not mask provider recovery for a whole TTL.
func (s *Service) BuildCatalog(ctx context.Context, criteria models.FilterCriteria) (*models.Batch, error) {
	start := time.Now()
	log := logging.Ctx(ctx)

	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}
	criteria = criteria.Normalized()

	key := criteria.CacheKey()
	if batch, ok := s.cache.Get(key); ok {
		log.Debug().Str("cache_key", key).Msg("catalog served from cache")
		return batch, nil
	}

	batch, err := s.engine.Run(ctx, criteria)
	if err != nil {
		return nil, err
	}

	batch.Candidates = s.order(batch.Candidates, criteria)
	if len(batch.Candidates) > s.targetSize {
		batch.Candidates = batch.Candidates[:s.targetSize]
	}

	if batch.Provenance == models.ProvenanceAPI {
		s.cache.Set(key, batch)
	}

	if criteria.RoomID != "" && s.store != nil {
		if err := s.store.StoreBatch(ctx, criteria.RoomID, batch); err != nil {
			// The batch is still usable; persistence failure only affects
			// later paged reads.
			log.Error().Err(err).Str("room_id", criteria.RoomID).Msg("failed to persist room catalog")
		}
	}

	metrics.RecordDiscoveryRun(string(batch.Provenance), time.Since(start))
	log.Info().
		Str("cache_key", key).
		Str("provenance", string(batch.Provenance)).
		Int("candidates", batch.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog built")

	return batch, nil
}

// order scores, buckets and shuffles under the rng lock; math/rand sources
// are not safe for concurrent use.
func (s *Service) order(candidates []models.Candidate, criteria models.FilterCriteria) []models.Candidate {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return Order(candidates, criteria, s.rng)
}

// validateCriteria performs the full input validation: structural checks
// from the model plus the genre vocabulary check owned by this package.
// Rejecting unknown ids here keeps ErrEmptyResult an exceptional outcome.
func validateCriteria(criteria models.FilterCriteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}
	for _, id := range criteria.GenreIDs {
		if !IsKnownGenreID(id) {
			return fmt.Errorf("%w: %d", ErrUnknownGenre, id)
		}
	}
	return nil
}
