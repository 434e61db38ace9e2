// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Clustering and override errors. Match with errors.Is.
var (
	// ErrMissingTemporalAnchor rejects a photo with neither a timestamp nor a fuzzy date.
	ErrMissingTemporalAnchor = errors.New("missing temporal anchor")

	// ErrMissingPhotoID rejects a photo without an identifier.
	ErrMissingPhotoID = errors.New("missing photo id")

	// ErrDuplicatePhoto rejects a photo whose ID was already seen.
	ErrDuplicatePhoto = errors.New("duplicate photo id")

	// ErrInvalidCoordinate rejects a partial or out-of-range GPS pair.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidFuzzyDate rejects an empty range or unknown granularity.
	ErrInvalidFuzzyDate = errors.New("invalid fuzzy date")

	// ErrInvalidSplit is returned for an empty, total or foreign split subset.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrIncompatibleMerge is returned when two events cannot be merged.
	ErrIncompatibleMerge = errors.New("incompatible merge")

	// ErrConfiguration is returned for non-positive thresholds or a negative window.
	ErrConfiguration = errors.New("configuration error")

	// ErrEventNotFound is returned when an event ID is unknown.
	ErrEventNotFound = errors.New("event not found")
)

// Rejection records why one raw photo could not enter clustering.
type Rejection struct {
	Index   int    `json:"index"`
	PhotoID string `json:"photo_id,omitempty"`
	Reason  error  `json:"-"`
}

// Error returns the rejection message.
func (r Rejection) Error() string {
	if r.PhotoID == "" {
		return fmt.Sprintf("photo #%d: %v", r.Index, r.Reason)
	}
	return fmt.Sprintf("photo %s: %v", r.PhotoID, r.Reason)
}

// Unwrap exposes the rejection reason.
func (r Rejection) Unwrap() error { return r.Reason }

// RejectionError fails a whole batch and lists every rejected photo.
type RejectionError struct {
	Rejections []Rejection
}

// Error joins the individual rejections.
func (e *RejectionError) Error() string {
	parts := make([]string, len(e.Rejections))
	for i, r := range e.Rejections {
		parts[i] = r.Error()
	}
	return fmt.Sprintf("%d photo(s) rejected: %s", len(e.Rejections), strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match any individual reason.
func (e *RejectionError) Unwrap() []error {
	errs := make([]error, len(e.Rejections))
	for i, r := range e.Rejections {
		errs[i] = r
	}
	return errs
}

// PhotoIDs returns the IDs of rejected photos that had one.
func (e *RejectionError) PhotoIDs() []string {
	var ids []string
	for _, r := range e.Rejections {
		if r.PhotoID != "" {
			ids = append(ids, r.PhotoID)
		}
	}
	return ids
}
