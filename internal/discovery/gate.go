// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package discovery

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// RejectionReason identifies which gate rule rejected a candidate. Values
// double as metric label values, so keep them stable.
type RejectionReason string

const (
	ReasonMissingID      RejectionReason = "missing_id"
	ReasonLanguage       RejectionReason = "language_not_whitelisted"
	ReasonOverview       RejectionReason = "overview_missing_or_placeholder"
	ReasonPoster         RejectionReason = "poster_missing"
	ReasonShapeMismatch  RejectionReason = "shape_mismatch"
	ReasonGenresEmpty    RejectionReason = "genres_empty"
	ReasonNegativeRating RejectionReason = "negative_vote_average"
	ReasonAdultContent   RejectionReason = "adult_content"
)

// RejectionError reports a per-candidate quality failure. The engine logs
// it, counts it, and moves on to the next candidate.
type RejectionError struct {
	Reason      RejectionReason
	CandidateID int64
	Detail      string
}

func (e *RejectionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("candidate %d rejected (%s): %s", e.CandidateID, e.Reason, e.Detail)
	}
	return fmt.Sprintf("candidate %d rejected (%s)", e.CandidateID, e.Reason)
}

// TaxonomyViolationError reports a candidate whose explicit media type tag
// contradicts its field shape. This means the provider endpoint routing is
// broken, not that one item is bad, so it aborts the run instead of being
// swallowed with the per-item rejection path.
type TaxonomyViolationError struct {
	CandidateID int64
	Tagged      models.MediaType
	Expected    models.MediaType
}

func (e *TaxonomyViolationError) Error() string {
	return fmt.Sprintf("candidate %d tagged %q but shaped like %q: provider endpoint routing is broken",
		e.CandidateID, e.Tagged, e.Expected)
}

// placeholderOverviews are the known machine-translation failure markers the
// provider serves instead of a real synopsis for some regional locales.
var placeholderOverviews = map[string]struct{}{
	"no overview found.":        {},
	"overview not available":    {},
	"descripcion no disponible": {},
	"sin descripcion":           {},
}

// GateConfig parameterizes the quality gate.
type GateConfig struct {
	// Languages is the accepted original-language whitelist.
	Languages []string

	// MinOverviewLength is the minimum overview length in runes.
	MinOverviewLength int

	// ImageBaseURL is prepended to relative poster paths.
	ImageBaseURL string
}

// DefaultGateConfig returns the gate settings matching the shipped defaults.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Languages:         []string{"en", "es"},
		MinOverviewLength: 20,
		ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
	}
}

// ValidateCandidate runs a raw provider result through the quality gate.
//
// The rules are zero tolerance and ordered: the first failing rule rejects
// with a *RejectionError and later rules are not consulted. The one fatal
// case, an explicit media type tag contradicting the field shape, returns a
// *TaxonomyViolationError instead so callers cannot treat it as a routine
// per-item rejection. On success the returned Candidate has every field
// populated and the poster path rewritten to an absolute URL.
func ValidateCandidate(raw models.RawCandidate, expected models.MediaType, cfg GateConfig) (models.Candidate, error) {
	reject := func(reason RejectionReason, detail string) (models.Candidate, error) {
		metrics.CandidatesRejected.WithLabelValues(string(reason)).Inc()
		return models.Candidate{}, &RejectionError{
			Reason:      reason,
			CandidateID: raw.ID,
			Detail:      detail,
		}
	}

	// Rule 1: identifier.
	if raw.ID <= 0 {
		return reject(ReasonMissingID, "")
	}

	// Rule 2: original language whitelist.
	if !languageAllowed(raw.OriginalLanguage, cfg.Languages) {
		return reject(ReasonLanguage, raw.OriginalLanguage)
	}

	// Rule 3: overview present, long enough, not a placeholder marker.
	overview := strings.TrimSpace(raw.Overview)
	if utf8.RuneCountInString(overview) <= cfg.MinOverviewLength {
		return reject(ReasonOverview, fmt.Sprintf("length %d", utf8.RuneCountInString(overview)))
	}
	if _, bad := placeholderOverviews[normalizeTerm(overview)]; bad {
		return reject(ReasonOverview, "placeholder marker")
	}

	// Rule 4: poster.
	if strings.TrimSpace(raw.PosterPath) == "" {
		return reject(ReasonPoster, "")
	}

	// Rule 5: shape consistency against the expected media type. A tag that
	// contradicts the populated shape is fatal for the whole run.
	if err := checkShape(raw, expected); err != nil {
		var violation *TaxonomyViolationError
		if errors.As(err, &violation) {
			metrics.CandidatesRejected.WithLabelValues("taxonomy_violation").Inc()
			return models.Candidate{}, violation
		}
		return reject(ReasonShapeMismatch, err.Error())
	}

	// Rule 6: genres.
	if len(raw.GenreIDs) == 0 {
		return reject(ReasonGenresEmpty, "")
	}

	// Rule 7: vote average.
	if raw.VoteAverage < 0 {
		return reject(ReasonNegativeRating, fmt.Sprintf("%.1f", raw.VoteAverage))
	}

	// Rule 8: adult flag.
	if raw.Adult {
		return reject(ReasonAdultContent, "")
	}

	genres := make([]int, len(raw.GenreIDs))
	copy(genres, raw.GenreIDs)

	return models.Candidate{
		ID:          raw.ID,
		MediaType:   expected,
		Title:       raw.DisplayTitle(),
		PosterURL:   absolutePosterURL(cfg.ImageBaseURL, raw.PosterPath),
		Overview:    overview,
		GenreIDs:    genres,
		VoteAverage: raw.VoteAverage,
		VoteCount:   raw.VoteCount,
		Popularity:  raw.Popularity,
		ReleaseDate: raw.ReleasedOn(),
		AddedAt:     time.Now().UTC(),
	}, nil
}

// checkShape verifies the candidate's populated fields match the expected
// media type, and promotes a contradicting explicit tag to a fatal error.
func checkShape(raw models.RawCandidate, expected models.MediaType) error {
	movieShape := raw.HasMovieShape()
	tvShape := raw.HasTVShape()

	var shaped models.MediaType
	switch {
	case movieShape && !tvShape:
		shaped = models.MediaTypeMovie
	case tvShape && !movieShape:
		shaped = models.MediaTypeTV
	default:
		return fmt.Errorf("ambiguous shape (movie=%t tv=%t)", movieShape, tvShape)
	}

	if raw.MediaType != "" && raw.MediaType != shaped {
		return &TaxonomyViolationError{
			CandidateID: raw.ID,
			Tagged:      raw.MediaType,
			Expected:    shaped,
		}
	}

	if shaped != expected {
		return fmt.Errorf("shaped like %q, expected %q", shaped, expected)
	}
	return nil
}

func languageAllowed(lang string, whitelist []string) bool {
	for _, allowed := range whitelist {
		if lang == allowed {
			return true
		}
	}
	return false
}

// absolutePosterURL joins the configured image base with a provider poster
// path. Paths that are already absolute pass through unchanged.
func absolutePosterURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
