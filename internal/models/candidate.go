// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package models

import "time"

// RawCandidate is the provider's representation of one discover result.
//
// The provider distinguishes movies from series by field shape rather than
// by tag: movies carry title/release_date, series carry name/first_air_date.
// Both shapes are declared here and the quality gate checks which one is
// actually populated against the expected media type. The explicit MediaType
// tag is only present on some endpoints (multi-search, trending); when it is
// present and contradicts the field shape, the upstream endpoint routing is
// broken and the gate raises a fatal error.
type RawCandidate struct {
	ID int64 `json:"id"`

	// Movie shape.
	Title       string `json:"title,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	// Series shape.
	Name         string `json:"name,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`

	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`
	GenreIDs         []int     `json:"genre_ids"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	Popularity       float64   `json:"popularity"`
	OriginalLanguage string    `json:"original_language"`
	Adult            bool      `json:"adult"`
	MediaType        MediaType `json:"media_type,omitempty"`
}

// HasMovieShape reports whether the movie-specific fields are populated.
func (r RawCandidate) HasMovieShape() bool {
	return r.Title != "" && r.ReleaseDate != ""
}

// HasTVShape reports whether the series-specific fields are populated.
func (r RawCandidate) HasTVShape() bool {
	return r.Name != "" && r.FirstAirDate != ""
}

// DisplayTitle returns the shape-appropriate title field.
func (r RawCandidate) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// ReleasedOn returns the shape-appropriate release date field.
func (r RawCandidate) ReleasedOn() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// Candidate is a fully validated catalog entry. Every field is guaranteed
// non-empty and well-typed by the quality gate; a Candidate can never fail
// validation retroactively.
type Candidate struct {
	ID           int64     `json:"id"`
	MediaType    MediaType `json:"media_type"`
	Title        string    `json:"title"`
	PosterURL    string    `json:"poster_url"`
	Overview     string    `json:"overview"`
	GenreIDs     []int     `json:"genre_ids"`
	VoteAverage  float64   `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	ReleaseDate  string    `json:"release_date"`
	PriorityTier int       `json:"priority_tier"`
	AddedAt      time.Time `json:"added_at"`
}

// CloneCandidates returns a shallow copy of the slice with copied genre id
// slices, so cached and stored lists cannot be mutated through aliasing.
func CloneCandidates(in []Candidate) []Candidate {
	if in == nil {
		return nil
	}
	out := make([]Candidate, len(in))
	copy(out, in)
	for i := range out {
		if out[i].GenreIDs != nil {
			genres := make([]int, len(out[i].GenreIDs))
			copy(genres, out[i].GenreIDs)
			out[i].GenreIDs = genres
		}
	}
	return out
}
