// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Package clustering turns a flat batch of photo metadata into timeline events.
//
// The automatic pass is a pure, single-shot computation:
//
//	RawPhoto -> Normalize -> GroupByTime -> RefineBySpace -> DetectBursts -> Materialize
//	                              |                  \______________________________/
//	                              |                        one task per temporal cluster
//	                              v
//	                     exact and fuzzy streams never mix
//
// Grouping is single-linkage: records are sorted by anchor (capture instant or
// fuzzy-range midpoint, ties by photo ID) and a cluster boundary is cut only
// where the gap to the previous record exceeds the configured window. A
// cluster may therefore span far more than one window. The spatial pass
// applies the same cut rule to great-circle distance between located records.
//
// # Determinism
//
// Given the same photos and Params, Engine.Cluster returns the same event
// boundaries, key photos and event IDs regardless of input order. Event IDs
// are UUIDv5 values derived from the context ID and member IDs.
//
// # Errors
//
// The batch either clusters completely or fails. A photo without any
// temporal anchor fails the batch with a *models.RejectionError wrapping
// models.ErrMissingTemporalAnchor; invalid Params fail with
// models.ErrConfiguration before any work is done.
package clustering
