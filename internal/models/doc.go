// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package models defines the core data types flowing through the discovery
// pipeline: filter criteria supplied by callers, raw candidates as returned
// by the metadata provider, validated candidates, and the finalized batch
// served to a room.
//
// Ownership rules:
//   - FilterCriteria and Batch are caller-owned and passed by value.
//   - RawCandidate is a transient provider representation; it never leaves
//     the fetch/validate boundary.
//   - Candidate is immutable once produced by the quality gate.
package models
