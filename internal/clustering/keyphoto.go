// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import "github.com/tomtom215/momentline/internal/models"

// SelectKeyPhoto picks the representative photo of a group: the earliest
// captioned member, or the earliest member when none has a caption.
// "Earliest" is anchor order with ties by ID, so the choice does not depend
// on input order. Returns "" only for an empty group.
func SelectKeyPhoto(members []*models.PhotoRecord) string {
	var earliest, earliestCaptioned *models.PhotoRecord
	for _, m := range members {
		if earliest == nil || models.AnchorLess(m, earliest) {
			earliest = m
		}
		if m.HasCaption() && (earliestCaptioned == nil || models.AnchorLess(m, earliestCaptioned)) {
			earliestCaptioned = m
		}
	}
	switch {
	case earliestCaptioned != nil:
		return earliestCaptioned.ID
	case earliest != nil:
		return earliest.ID
	default:
		return ""
	}
}
