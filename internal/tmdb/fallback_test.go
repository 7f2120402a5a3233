// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package tmdb

import (
	"testing"

	"github.com/reelmatch/reelmatch/internal/models"
)

func TestFallbackCandidatesShapes(t *testing.T) {
	t.Parallel()

	movies := FallbackCandidates(models.MediaTypeMovie)
	if len(movies) == 0 {
		t.Fatal("expected a non-empty movie fallback catalog")
	}
	for _, m := range movies {
		if !m.HasMovieShape() {
			t.Errorf("fallback movie %d must carry title and release date", m.ID)
		}
		if m.HasTVShape() {
			t.Errorf("fallback movie %d must not carry series fields", m.ID)
		}
	}

	series := FallbackCandidates(models.MediaTypeTV)
	if len(series) == 0 {
		t.Fatal("expected a non-empty series fallback catalog")
	}
	for _, s := range series {
		if !s.HasTVShape() {
			t.Errorf("fallback series %d must carry name and first air date", s.ID)
		}
		if s.HasMovieShape() {
			t.Errorf("fallback series %d must not carry movie fields", s.ID)
		}
	}

	if FallbackCandidates("book") != nil {
		t.Error("unknown media type must yield nil")
	}
}

func TestFallbackCandidatesFieldCompleteness(t *testing.T) {
	t.Parallel()

	for _, mediaType := range []models.MediaType{models.MediaTypeMovie, models.MediaTypeTV} {
		for _, c := range FallbackCandidates(mediaType) {
			if c.ID <= 0 {
				t.Errorf("%s fallback entry missing id: %+v", mediaType, c)
			}
			if len(c.Overview) < 20 {
				t.Errorf("%s fallback %d overview too short", mediaType, c.ID)
			}
			if c.PosterPath == "" {
				t.Errorf("%s fallback %d missing poster path", mediaType, c.ID)
			}
			if len(c.GenreIDs) == 0 {
				t.Errorf("%s fallback %d missing genre ids", mediaType, c.ID)
			}
			if c.VoteCount < 50 {
				t.Errorf("%s fallback %d vote count below the discover quality floor", mediaType, c.ID)
			}
			if c.OriginalLanguage != "en" && c.OriginalLanguage != "es" {
				t.Errorf("%s fallback %d language %q outside accepted set", mediaType, c.ID, c.OriginalLanguage)
			}
			if c.Adult {
				t.Errorf("%s fallback %d flagged adult", mediaType, c.ID)
			}
		}
	}
}

func TestFallbackCandidatesReturnsDetachedCopies(t *testing.T) {
	t.Parallel()

	first := FallbackCandidates(models.MediaTypeMovie)
	first[0].GenreIDs[0] = -1
	first[0].Title = "mutated"

	second := FallbackCandidates(models.MediaTypeMovie)
	if second[0].GenreIDs[0] == -1 || second[0].Title == "mutated" {
		t.Error("mutating a returned catalog must not affect subsequent calls")
	}
}
