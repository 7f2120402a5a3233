// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package discovery

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
	"github.com/reelmatch/reelmatch/internal/tmdb"
)

// Priority tiers, in execution order. Candidates are tagged with the tier
// that produced them; fallback catalog entries carry TierFallback.
const (
	TierFallback = 0
	TierANDGenre = 1
	TierORGenre  = 2
	TierPopular  = 3
)

// ErrEmptyResult is the engine's single operation-level failure: after all
// tiers and the fallback merge, zero candidates remained. It indicates
// impossibly narrow criteria and should normally be caught by input
// validation before a run starts.
var ErrEmptyResult = errors.New("discovery produced zero candidates")

// Fetcher is the provider surface the engine consumes. Satisfied by both
// *tmdb.Client and *tmdb.ResilientClient; tests supply fakes.
type Fetcher interface {
	Discover(ctx context.Context, req tmdb.DiscoverRequest) (*tmdb.DiscoverPage, error)
}

// Fallback supplies the embedded catalog used when the provider is
// unavailable. Satisfied by tmdb.FallbackCandidates.
type Fallback func(mediaType models.MediaType) []models.RawCandidate

// EngineConfig parameterizes one engine instance.
type EngineConfig struct {
	// TargetSize is the candidate count a run tries to reach. The last
	// accepted page may overshoot it; the service trims after ordering.
	TargetSize int

	// MaxPagesPerTier bounds provider page fetches within one tier.
	MaxPagesPerTier int

	// MinVoteCount is passed through to discover queries as the provider-
	// side vote floor.
	MinVoteCount int

	// Languages is the original-language whitelist, applied both as a
	// discover query parameter and again by the quality gate.
	Languages []string

	Gate GateConfig
}

// Engine builds a candidate batch by walking the three priority tiers:
// AND-of-genres, OR-of-genres, then unfiltered popular titles. Tiers and
// pages run strictly sequentially because each page's dedup set depends on
// everything accepted before it.
type Engine struct {
	fetcher  Fetcher
	fallback Fallback
	cfg      EngineConfig
}

// NewEngine creates an engine over the given provider client.
func NewEngine(fetcher Fetcher, fallback Fallback, cfg EngineConfig) *Engine {
	return &Engine{fetcher: fetcher, fallback: fallback, cfg: cfg}
}

// runState accumulates one run's accepted candidates and dedup set.
type runState struct {
	accepted     []models.Candidate
	seen         map[int64]struct{}
	providerDown bool
}

// Run executes the tier walk for the given criteria and returns an
// unordered batch. Provider failures degrade to the embedded fallback
// catalog (provenance mixed_with_fallback or emergency_fallback); only a
// taxonomy violation or context cancellation propagates as an error, plus
// ErrEmptyResult when nothing at all was produced.
//
// Criteria must already be validated and normalized.
func (e *Engine) Run(ctx context.Context, criteria models.FilterCriteria) (*models.Batch, error) {
	state := &runState{seen: make(map[int64]struct{}, e.cfg.TargetSize)}

	tiers := []struct {
		tier int
		mode tmdb.GenreMode
	}{
		{TierANDGenre, tmdb.GenreModeAll},
		{TierORGenre, tmdb.GenreModeAny},
		{TierPopular, ""},
	}

	for _, t := range tiers {
		if len(state.accepted) >= e.cfg.TargetSize || state.providerDown {
			break
		}
		if !e.tierApplies(t.tier, criteria) {
			continue
		}
		if err := e.runTier(ctx, criteria, t.tier, t.mode, state); err != nil {
			return nil, err
		}
	}

	provenance := models.ProvenanceAPI
	if state.providerDown || len(state.accepted) < e.cfg.TargetSize {
		provenance = e.mergeFallback(ctx, criteria, state)
	}

	if len(state.accepted) == 0 {
		return nil, ErrEmptyResult
	}

	return &models.Batch{
		Criteria:   criteria,
		Candidates: state.accepted,
		Provenance: provenance,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// tierApplies reports whether a tier runs for the given criteria. The two
// genre tiers need at least one requested genre, and with a single genre
// the AND and OR queries are identical, so the OR tier is skipped.
func (e *Engine) tierApplies(tier int, criteria models.FilterCriteria) bool {
	switch tier {
	case TierANDGenre:
		return len(criteria.GenreIDs) > 0
	case TierORGenre:
		return len(criteria.GenreIDs) > 1
	default:
		return true
	}
}

// runTier paginates one tier until the target is met, the page cap is hit,
// the provider reports no further pages, or the provider fails. A provider
// failure marks the run degraded and stops live fetching; only a taxonomy
// violation or context cancellation is returned as an error.
func (e *Engine) runTier(ctx context.Context, criteria models.FilterCriteria, tier int, mode tmdb.GenreMode, state *runState) error {
	log := logging.Ctx(ctx)

	var genreIDs []int
	if tier != TierPopular {
		genreIDs = MapGenres(criteria.GenreIDs, criteria.MediaType)
	}

	for page := 1; page <= e.cfg.MaxPagesPerTier; page++ {
		if len(state.accepted) >= e.cfg.TargetSize {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := e.fetcher.Discover(ctx, tmdb.DiscoverRequest{
			MediaType:         criteria.MediaType,
			GenreIDs:          genreIDs,
			GenreMode:         mode,
			Page:              page,
			OriginalLanguages: e.cfg.Languages,
			MinVoteCount:      e.cfg.MinVoteCount,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Warn().Err(err).Int("tier", tier).Int("page", page).
				Msg("provider fetch failed, degrading to fallback catalog")
			state.providerDown = true
			return nil
		}

		metrics.DiscoveryTierPages.WithLabelValues(strconv.Itoa(tier)).Inc()

		if err := e.acceptPage(ctx, result.Results, criteria.MediaType, tier, state); err != nil {
			return err
		}

		if result.Page >= result.TotalPages {
			return nil
		}
	}
	return nil
}

// acceptPage runs every page item through the quality gate, skips ids
// already accepted this run, and tags accepted candidates with their tier.
// A taxonomy violation aborts the page and the run.
func (e *Engine) acceptPage(ctx context.Context, items []models.RawCandidate, mediaType models.MediaType, tier int, state *runState) error {
	log := logging.Ctx(ctx)

	for _, raw := range items {
		if _, dup := state.seen[raw.ID]; dup {
			continue
		}

		candidate, err := ValidateCandidate(raw, mediaType, e.cfg.Gate)
		if err != nil {
			var violation *TaxonomyViolationError
			if errors.As(err, &violation) {
				return violation
			}
			log.Debug().Err(err).Int64("candidate_id", raw.ID).Msg("candidate rejected")
			continue
		}

		candidate.PriorityTier = tier
		state.seen[candidate.ID] = struct{}{}
		state.accepted = append(state.accepted, candidate)
		metrics.CandidatesAccepted.WithLabelValues(strconv.Itoa(tier)).Inc()
	}
	return nil
}

// mergeFallback tops the run up from the embedded catalog and returns the
// resulting provenance. Fallback entries pass through the same gate and
// dedup as live results; gate failures here indicate a broken embedded
// catalog and are logged at error level but still skipped.
func (e *Engine) mergeFallback(ctx context.Context, criteria models.FilterCriteria, state *runState) models.Provenance {
	log := logging.Ctx(ctx)
	hadLive := len(state.accepted) > 0

	if !state.providerDown && hadLive {
		// The provider simply ran out of matching pages. An underfilled
		// live batch is an accepted outcome, not a degraded one.
		return models.ProvenanceAPI
	}

	for _, raw := range e.fallback(criteria.MediaType) {
		if len(state.accepted) >= e.cfg.TargetSize {
			break
		}
		if _, dup := state.seen[raw.ID]; dup {
			continue
		}
		candidate, err := ValidateCandidate(raw, criteria.MediaType, e.cfg.Gate)
		if err != nil {
			log.Error().Err(err).Int64("candidate_id", raw.ID).
				Msg("embedded fallback entry failed validation")
			continue
		}
		candidate.PriorityTier = TierFallback
		state.seen[candidate.ID] = struct{}{}
		state.accepted = append(state.accepted, candidate)
	}

	if hadLive {
		return models.ProvenanceMixed
	}
	return models.ProvenanceFallback
}
