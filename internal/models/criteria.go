// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MediaType is the two-valued content classification. It determines which
// provider endpoint is queried and which field shape candidates must carry.
type MediaType string

const (
	// MediaTypeMovie selects the movie discovery endpoint and the
	// title/release_date field shape.
	MediaTypeMovie MediaType = "movie"

	// MediaTypeTV selects the TV discovery endpoint and the
	// name/first_air_date field shape.
	MediaTypeTV MediaType = "tv"
)

// Valid reports whether m is one of the two supported media types.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// Other returns the opposite media type. Used when translating genre ids
// across the two provider taxonomies.
func (m MediaType) Other() MediaType {
	if m == MediaTypeMovie {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// MaxGenresPerRequest bounds how many genre ids a single criteria may carry.
// The provider quota makes each extra genre a multiplier on page fetches,
// and the original product caps selection at two.
const MaxGenresPerRequest = 2

// Criteria validation errors.
var (
	ErrInvalidMediaType = errors.New("media type must be \"movie\" or \"tv\"")
	ErrTooManyGenres    = fmt.Errorf("at most %d genre ids are allowed", MaxGenresPerRequest)
)

// FilterCriteria describes one catalog request. Genre ids are always
// expressed in the movie taxonomy; the taxonomy adapter translates them
// when the criteria targets the TV endpoint.
type FilterCriteria struct {
	MediaType MediaType `json:"media_type"`
	GenreIDs  []int     `json:"genre_ids,omitempty"`
	RoomID    string    `json:"room_id,omitempty"`
}

// Validate checks the structural invariants: a valid media type and at most
// MaxGenresPerRequest genre ids. Genre id vocabulary checks are performed by
// the discovery service, which owns the taxonomy tables.
func (c FilterCriteria) Validate() error {
	if !c.MediaType.Valid() {
		return ErrInvalidMediaType
	}
	if len(c.GenreIDs) > MaxGenresPerRequest {
		return ErrTooManyGenres
	}
	return nil
}

// Normalized returns a copy with genre ids sorted and deduplicated so that
// criteria that are set-equal compare (and cache) identically.
func (c FilterCriteria) Normalized() FilterCriteria {
	if len(c.GenreIDs) == 0 {
		c.GenreIDs = nil
		return c
	}
	ids := make([]int, 0, len(c.GenreIDs))
	seen := make(map[int]struct{}, len(c.GenreIDs))
	for _, id := range c.GenreIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	c.GenreIDs = ids
	return c
}

// CacheKey derives the result-cache key: media type, sorted comma-joined
// genre ids, and the room scope (or "global" for room-agnostic requests).
// Criteria that are set-equal up to genre ordering produce the same key.
func (c FilterCriteria) CacheKey() string {
	n := c.Normalized()

	genres := make([]string, len(n.GenreIDs))
	for i, id := range n.GenreIDs {
		genres[i] = strconv.Itoa(id)
	}

	scope := n.RoomID
	if scope == "" {
		scope = "global"
	}

	return string(n.MediaType) + ":" + strings.Join(genres, ",") + ":" + scope
}
