// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package discovery

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/reelmatch/reelmatch/internal/models"
)

func scoreCandidate(genres []int, rating, popularity float64, releaseDate string) models.Candidate {
	return models.Candidate{
		ID:          1,
		MediaType:   models.MediaTypeMovie,
		GenreIDs:    genres,
		VoteAverage: rating,
		Popularity:  popularity,
		ReleaseDate: releaseDate,
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	recent := fmt.Sprintf("%d-06-01", time.Now().Year()-1)
	old := "1990-06-01"
	movieCriteria := func(genres ...int) models.FilterCriteria {
		return models.FilterCriteria{MediaType: models.MediaTypeMovie, GenreIDs: genres}
	}

	tests := []struct {
		name     string
		c        models.Candidate
		criteria models.FilterCriteria
		want     float64
	}{
		{
			name:     "no genres requested scores base",
			c:        scoreCandidate([]int{18}, 0, 0, old),
			criteria: movieCriteria(),
			want:     1.0,
		},
		{
			name:     "all genres match",
			c:        scoreCandidate([]int{28, 12, 35}, 0, 0, old),
			criteria: movieCriteria(28, 12),
			want:     3.0,
		},
		{
			name:     "some genres match",
			c:        scoreCandidate([]int{28, 18}, 0, 0, old),
			criteria: movieCriteria(28, 35),
			want:     2.0,
		},
		{
			name:     "no genres match",
			c:        scoreCandidate([]int{99}, 0, 0, old),
			criteria: movieCriteria(28, 35),
			want:     1.0,
		},
		{
			name:     "high rating bonus",
			c:        scoreCandidate([]int{99}, 7.5, 0, old),
			criteria: movieCriteria(28),
			want:     1.5,
		},
		{
			name:     "moderate rating bonus",
			c:        scoreCandidate([]int{99}, 6.0, 0, old),
			criteria: movieCriteria(28),
			want:     1.2,
		},
		{
			name:     "high popularity bonus",
			c:        scoreCandidate([]int{99}, 0, 100, old),
			criteria: movieCriteria(28),
			want:     1.3,
		},
		{
			name:     "moderate popularity bonus",
			c:        scoreCandidate([]int{99}, 0, 50, old),
			criteria: movieCriteria(28),
			want:     1.1,
		},
		{
			name:     "recency bonus",
			c:        scoreCandidate([]int{99}, 0, 0, recent),
			criteria: movieCriteria(28),
			want:     1.2,
		},
		{
			name:     "malformed date earns no recency bonus",
			c:        scoreCandidate([]int{99}, 0, 0, "soon"),
			criteria: movieCriteria(28),
			want:     1.0,
		},
		{
			name:     "total capped at maximum",
			c:        scoreCandidate([]int{28, 12}, 9.1, 250, recent),
			criteria: movieCriteria(28, 12),
			want:     3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Score(tt.c, tt.criteria)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestScoreTranslatesRequestedGenresForTV(t *testing.T) {
	t.Parallel()

	// Requested ids are movie-taxonomy; a series candidate carries the
	// merged TV id, and that still counts as a perfect match.
	c := models.Candidate{
		ID:        1,
		MediaType: models.MediaTypeTV,
		GenreIDs:  []int{10759},
	}
	criteria := models.FilterCriteria{MediaType: models.MediaTypeTV, GenreIDs: []int{28, 12}}

	if got := Score(c, criteria); got != 3.0 {
		t.Errorf("Score() = %.2f, want 3.0 for merged-genre perfect match", got)
	}
}

func TestOrderRespectsBucketBoundaries(t *testing.T) {
	t.Parallel()

	criteria := models.FilterCriteria{MediaType: models.MediaTypeMovie, GenreIDs: []int{28, 12}}

	// Ten high-bucket (perfect genre match), ten low-bucket candidates.
	var candidates []models.Candidate
	for i := 0; i < 10; i++ {
		c := scoreCandidate([]int{28, 12}, 0, 0, "1990-01-01")
		c.ID = int64(i + 1)
		candidates = append(candidates, c)
	}
	for i := 0; i < 10; i++ {
		c := scoreCandidate([]int{99}, 0, 0, "1990-01-01")
		c.ID = int64(i + 101)
		candidates = append(candidates, c)
	}

	rng := rand.New(rand.NewSource(42))
	got := Order(candidates, criteria, rng)

	if len(got) != 20 {
		t.Fatalf("Order() returned %d candidates, want 20", len(got))
	}
	for i, c := range got[:10] {
		if c.ID > 100 {
			t.Errorf("position %d holds low-bucket id %d ahead of the high bucket", i, c.ID)
		}
	}
	for i, c := range got[10:] {
		if c.ID <= 100 {
			t.Errorf("position %d holds high-bucket id %d behind the low bucket", i+10, c.ID)
		}
	}
}

func TestOrderShufflesWithinBuckets(t *testing.T) {
	t.Parallel()

	criteria := models.FilterCriteria{MediaType: models.MediaTypeMovie, GenreIDs: []int{28}}

	var candidates []models.Candidate
	for i := 0; i < 30; i++ {
		c := scoreCandidate([]int{28}, 9.0, 0, "1990-01-01")
		c.ID = int64(i + 1)
		candidates = append(candidates, c)
	}

	a := Order(candidates, criteria, rand.New(rand.NewSource(1)))
	b := Order(candidates, criteria, rand.New(rand.NewSource(2)))

	same := true
	for i := range a {
		if a[i].ID != b[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical orderings across 30 candidates")
	}
}

func TestOrderIsDeterministicForAFixedSeed(t *testing.T) {
	t.Parallel()

	criteria := models.FilterCriteria{MediaType: models.MediaTypeMovie}

	var candidates []models.Candidate
	for i := 0; i < 15; i++ {
		c := scoreCandidate([]int{18}, 5.0, 0, "1990-01-01")
		c.ID = int64(i + 1)
		candidates = append(candidates, c)
	}

	a := Order(candidates, criteria, rand.New(rand.NewSource(7)))
	b := Order(candidates, criteria, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("position %d differs for identical seeds: %d vs %d", i, a[i].ID, b[i].ID)
		}
	}
}
