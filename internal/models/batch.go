// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package models

import "time"

// Provenance records where a batch's candidates came from. Downstream code
// and tests use it to distinguish live results from degraded fallback paths.
type Provenance string

const (
	// ProvenanceAPI means every candidate came from the live provider.
	ProvenanceAPI Provenance = "api"

	// ProvenanceMixed means live results were topped up from the embedded
	// fallback catalog after a provider failure mid-run.
	ProvenanceMixed Provenance = "mixed_with_fallback"

	// ProvenanceFallback means the provider was unavailable for the whole
	// run and the batch is entirely the embedded fallback catalog.
	ProvenanceFallback Provenance = "emergency_fallback"
)

// Batch is the finalized, ordered, deduplicated candidate list served to a
// room, tagged with the criteria that produced it.
type Batch struct {
	Criteria   FilterCriteria `json:"criteria"`
	Candidates []Candidate    `json:"candidates"`
	Provenance Provenance     `json:"provenance"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Len returns the number of candidates in the batch.
func (b *Batch) Len() int {
	return len(b.Candidates)
}
