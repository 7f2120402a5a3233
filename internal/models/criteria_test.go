// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilterCriteriaValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria FilterCriteria
		wantErr  error
	}{
		{
			name:     "valid movie criteria",
			criteria: FilterCriteria{MediaType: MediaTypeMovie, GenreIDs: []int{28, 12}},
		},
		{
			name:     "valid tv criteria without genres",
			criteria: FilterCriteria{MediaType: MediaTypeTV},
		},
		{
			name:     "missing media type",
			criteria: FilterCriteria{GenreIDs: []int{28}},
			wantErr:  ErrInvalidMediaType,
		},
		{
			name:     "unknown media type",
			criteria: FilterCriteria{MediaType: "book"},
			wantErr:  ErrInvalidMediaType,
		},
		{
			name:     "too many genres",
			criteria: FilterCriteria{MediaType: MediaTypeMovie, GenreIDs: []int{28, 12, 35}},
			wantErr:  ErrTooManyGenres,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.criteria.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterCriteriaNormalized(t *testing.T) {
	t.Parallel()

	got := FilterCriteria{MediaType: MediaTypeMovie, GenreIDs: []int{12, 28, 12}}.Normalized()
	want := []int{12, 28}
	if !reflect.DeepEqual(got.GenreIDs, want) {
		t.Errorf("Normalized().GenreIDs = %v, want %v", got.GenreIDs, want)
	}

	empty := FilterCriteria{MediaType: MediaTypeTV, GenreIDs: []int{}}.Normalized()
	if empty.GenreIDs != nil {
		t.Errorf("expected nil genre ids for empty input, got %v", empty.GenreIDs)
	}
}

func TestFilterCriteriaCacheKey(t *testing.T) {
	t.Parallel()

	a := FilterCriteria{MediaType: MediaTypeMovie, GenreIDs: []int{28, 12}, RoomID: "r1"}
	b := FilterCriteria{MediaType: MediaTypeMovie, GenreIDs: []int{12, 28}, RoomID: "r1"}

	// Set-equal criteria must produce identical keys regardless of order.
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("keys differ for set-equal criteria: %q vs %q", a.CacheKey(), b.CacheKey())
	}

	if got, want := a.CacheKey(), "movie:12,28:r1"; got != want {
		t.Errorf("CacheKey() = %q, want %q", got, want)
	}

	global := FilterCriteria{MediaType: MediaTypeTV}
	if got, want := global.CacheKey(), "tv::global"; got != want {
		t.Errorf("CacheKey() = %q, want %q", got, want)
	}

	scoped := FilterCriteria{MediaType: MediaTypeTV, RoomID: "r2"}
	if global.CacheKey() == scoped.CacheKey() {
		t.Error("room-scoped and global criteria must not share a key")
	}
}

func TestCloneCandidates(t *testing.T) {
	t.Parallel()

	orig := []Candidate{{ID: 1, GenreIDs: []int{28, 12}}}
	clone := CloneCandidates(orig)

	clone[0].GenreIDs[0] = 99
	if orig[0].GenreIDs[0] != 28 {
		t.Error("mutating the clone must not affect the original")
	}

	if CloneCandidates(nil) != nil {
		t.Error("cloning nil must return nil")
	}
}
