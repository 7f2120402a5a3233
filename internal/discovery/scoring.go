// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package discovery

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/reelmatch/reelmatch/internal/models"
)

// Score thresholds for the three presentation buckets.
const (
	highBucketMin   = 2.5
	mediumBucketMin = 1.5
	maxScore        = 3.0
)

// Score rates how well a candidate matches the requested criteria on a
// 0..3 scale. Genre overlap dominates; rating, popularity and recency add
// smaller bonuses; the total is capped at 3.0.
func Score(c models.Candidate, criteria models.FilterCriteria) float64 {
	score := genreMatchScore(c.GenreIDs, criteria.GenreIDs, criteria.MediaType)

	switch {
	case c.VoteAverage >= 7.5:
		score += 0.5
	case c.VoteAverage >= 6.0:
		score += 0.2
	}

	switch {
	case c.Popularity >= 100:
		score += 0.3
	case c.Popularity >= 50:
		score += 0.1
	}

	if year := releaseYear(c.ReleaseDate); year > 0 && time.Now().Year()-year <= 5 {
		score += 0.2
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// genreMatchScore gives 3.0 when the candidate carries every requested
// genre, 2.0 when it carries at least one, 1.0 when it carries none, and a
// flat base of 1.0 when no genres were requested at all. Requested ids are
// movie-taxonomy; candidate ids are compared in the candidate's own
// taxonomy, so the request side is translated first.
func genreMatchScore(have []int, requested []int, target models.MediaType) float64 {
	if len(requested) == 0 {
		return 1.0
	}

	wanted := MapGenres(requested, target)
	haveSet := make(map[int]struct{}, len(have))
	for _, id := range have {
		haveSet[id] = struct{}{}
	}

	matched := 0
	for _, id := range wanted {
		if _, ok := haveSet[id]; ok {
			matched++
		}
	}

	switch {
	case matched == len(wanted):
		return 3.0
	case matched > 0:
		return 2.0
	default:
		return 1.0
	}
}

// releaseYear parses the year out of a provider YYYY-MM-DD date. Returns 0
// when the date is malformed.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// Order arranges candidates for presentation: each candidate is scored,
// bucketed into high (>=2.5), medium (>=1.5) or low, each bucket is
// shuffled independently with the supplied random source, and the buckets
// are concatenated high-to-low. Shuffling within a bucket keeps repeated
// sessions with the same criteria from always opening on the same titles.
//
// rng is injected so tests can seed it and assert on bucket membership.
func Order(candidates []models.Candidate, criteria models.FilterCriteria, rng *rand.Rand) []models.Candidate {
	var high, medium, low []models.Candidate
	for _, c := range candidates {
		switch s := Score(c, criteria); {
		case s >= highBucketMin:
			high = append(high, c)
		case s >= mediumBucketMin:
			medium = append(medium, c)
		default:
			low = append(low, c)
		}
	}

	shuffleBucket(high, rng)
	shuffleBucket(medium, rng)
	shuffleBucket(low, rng)

	out := make([]models.Candidate, 0, len(candidates))
	out = append(out, high...)
	out = append(out, medium...)
	out = append(out, low...)
	return out
}

func shuffleBucket(bucket []models.Candidate, rng *rand.Rand) {
	rng.Shuffle(len(bucket), func(i, j int) {
		bucket[i], bucket[j] = bucket[j], bucket[i]
	})
}
