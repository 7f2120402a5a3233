// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package discovery implements the catalog-building pipeline: the quality
// gate, the genre taxonomy adapter, the tiered discovery engine, the
// priority scorer and tiered shuffler, and the cache-fronted service that
// orchestrates them.
package discovery

import "github.com/reelmatch/reelmatch/internal/models"

// Genre ids in FilterCriteria are always expressed in the movie taxonomy.
// The provider keeps a separate taxonomy for series, and a handful of ids
// collide across the two: an id that means one thing for movies maps to a
// differently numbered merged genre for series. This table covers the
// known collisions; every other id is shared between the taxonomies.
var movieToTVGenre = map[int]int{
	28:    10759, // Action        -> Action & Adventure
	12:    10759, // Adventure     -> Action & Adventure
	14:    10765, // Fantasy       -> Sci-Fi & Fantasy
	878:   10765, // Science Fiction -> Sci-Fi & Fantasy
	10752: 10768, // War           -> War & Politics
}

// MapGenres translates movie-taxonomy genre ids into the taxonomy of the
// target media type. Identity for the movie target. Order-preserving, and
// ids that collapse onto the same target id are deduplicated. The movie
// taxonomy's TV-movie id (10770) has no series counterpart and is dropped
// when translating to the TV taxonomy.
func MapGenres(ids []int, target models.MediaType) []int {
	if len(ids) == 0 {
		return nil
	}
	if target != models.MediaTypeTV {
		out := make([]int, len(ids))
		copy(out, ids)
		return out
	}

	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id == 10770 {
			continue
		}
		if mapped, ok := movieToTVGenre[id]; ok {
			id = mapped
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// genreVocabulary maps Spanish and English genre terms to movie-taxonomy
// ids, restored from the original product's chat-driven genre resolution.
// Criteria validation and any text-facing caller resolve names through it.
var genreVocabulary = map[string]int{
	// Action / Adventure
	"accion": 28, "action": 28,
	"aventura": 12, "adventure": 12,

	// Comedy
	"comedia": 35, "comedy": 35, "gracioso": 35, "divertido": 35, "humor": 35,

	// Drama
	"drama": 18, "dramatico": 18,

	// Horror / Thriller
	"terror": 27, "horror": 27, "miedo": 27,
	"suspenso": 53, "thriller": 53,

	// Romance
	"romance": 10749, "romantico": 10749, "amor": 10749,

	// Sci-Fi
	"ciencia ficcion": 878, "sci-fi": 878, "scifi": 878, "futurista": 878,

	// Fantasy
	"fantasia": 14, "fantasy": 14, "magico": 14,

	// Crime
	"crimen": 80, "crime": 80, "policial": 80,

	// Animation
	"animacion": 16, "animation": 16, "animada": 16, "dibujos": 16,

	// Documentary
	"documental": 99, "documentary": 99,

	// Family
	"familiar": 10751, "family": 10751, "ninos": 10751, "infantil": 10751,

	// History
	"historia": 36, "history": 36, "historico": 36,

	// Music
	"musica": 10402, "music": 10402, "musical": 10402,

	// Mystery
	"misterio": 9648, "mystery": 9648,

	// War
	"guerra": 10752, "war": 10752, "belico": 10752,

	// Western
	"western": 37, "oeste": 37,
}

// genreCanonicalName maps movie-taxonomy ids to their canonical English
// display name.
var genreCanonicalName = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10770: "TV Movie",
}

// GenreIDByName resolves a Spanish or English genre term to its
// movie-taxonomy id.
func GenreIDByName(name string) (int, bool) {
	id, ok := genreVocabulary[normalizeTerm(name)]
	return id, ok
}

// GenreNameByID returns the canonical English name of a movie-taxonomy
// genre id, or "" when unknown.
func GenreNameByID(id int) string {
	return genreCanonicalName[id]
}

// IsKnownGenreID reports whether id exists in the movie taxonomy. Criteria
// carrying unknown ids are rejected before a pipeline run starts.
func IsKnownGenreID(id int) bool {
	_, ok := genreCanonicalName[id]
	return ok
}

// normalizeTerm lowercases a term and strips the Spanish accents the
// vocabulary and placeholder tables are stored without.
func normalizeTerm(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case 'á', 'Á':
			r = 'a'
		case 'é', 'É':
			r = 'e'
		case 'í', 'Í':
			r = 'i'
		case 'ó', 'Ó':
			r = 'o'
		case 'ú', 'Ú':
			r = 'u'
		case 'ñ', 'Ñ':
			r = 'n'
		default:
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
		}
		out = append(out, r)
	}
	return string(out)
}
