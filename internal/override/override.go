// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package override

import (
	"fmt"
	"time"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
)

// PhotoIndex maps photo IDs to normalized records.
type PhotoIndex map[string]models.PhotoRecord

// records resolves ids in order. Every member of a committed event is
// indexed, so a miss means the caller passed the wrong index.
func (idx PhotoIndex) records(ids []string) ([]*models.PhotoRecord, error) {
	out := make([]*models.PhotoRecord, len(ids))
	for i, id := range ids {
		rec, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("photo %q is not indexed", id)
		}
		out[i] = &rec
	}
	return out, nil
}

// Split moves subset out of e into a new event with ID newID. The returned
// kept event retains e's ID and the remaining members. Both sides carry
// identical deep copies of e's attributes; no defaults are seeded. Derived
// fields are recomputed per side.
//
// Duplicate IDs in subset are collapsed. An empty subset, one naming a
// photo outside e, or one covering every member fails with
// models.ErrInvalidSplit.
func Split(
	e *models.TimelineEvent,
	subset []string,
	photos PhotoIndex,
	params clustering.Params,
	now time.Time,
	newID string,
) (kept, split models.TimelineEvent, err error) {
	if len(subset) == 0 {
		return kept, split, fmt.Errorf("%w: empty subset", models.ErrInvalidSplit)
	}

	moving := make(map[string]bool, len(subset))
	for _, id := range subset {
		if !e.HasMember(id) {
			return kept, split, fmt.Errorf("%w: photo %q is not a member of event %s", models.ErrInvalidSplit, id, e.ID)
		}
		moving[id] = true
	}
	if len(moving) == len(e.MemberPhotoIDs) {
		return kept, split, fmt.Errorf("%w: subset covers every member of event %s", models.ErrInvalidSplit, e.ID)
	}

	var stay, move []string
	for _, id := range e.MemberPhotoIDs {
		if moving[id] {
			move = append(move, id)
		} else {
			stay = append(stay, id)
		}
	}

	kept = e.Clone()
	kept.MemberPhotoIDs = stay
	kept.UpdatedAt = now
	if err := rederive(&kept, photos, params); err != nil {
		return models.TimelineEvent{}, models.TimelineEvent{}, err
	}

	split = e.Clone()
	split.ID = newID
	split.MemberPhotoIDs = move
	split.CreatedAt = now
	split.UpdatedAt = now
	if err := rederive(&split, photos, params); err != nil {
		return models.TimelineEvent{}, models.TimelineEvent{}, err
	}
	return kept, split, nil
}

// Merge absorbs b into a. The result keeps a's ID, type and creation time.
// Members are a's followed by b's with duplicates dropped. Attributes are
// the union of both; on a key collision the value from the more recently
// updated event wins, and on equal update times the larger event ID wins.
//
// Merging an event with itself or across contexts fails with
// models.ErrIncompatibleMerge.
func Merge(
	a, b *models.TimelineEvent,
	photos PhotoIndex,
	params clustering.Params,
	now time.Time,
) (models.TimelineEvent, error) {
	if a.ID == b.ID {
		return models.TimelineEvent{}, fmt.Errorf("%w: cannot merge event %s with itself", models.ErrIncompatibleMerge, a.ID)
	}
	if a.ContextID != b.ContextID {
		return models.TimelineEvent{}, fmt.Errorf("%w: events %s and %s belong to different contexts",
			models.ErrIncompatibleMerge, a.ID, b.ID)
	}

	merged := a.Clone()
	seen := make(map[string]bool, len(a.MemberPhotoIDs)+len(b.MemberPhotoIDs))
	ids := make([]string, 0, len(a.MemberPhotoIDs)+len(b.MemberPhotoIDs))
	for _, list := range [][]string{a.MemberPhotoIDs, b.MemberPhotoIDs} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	merged.MemberPhotoIDs = ids
	merged.CustomAttributes = mergeAttributes(a, b)
	merged.UpdatedAt = now

	if err := rederive(&merged, photos, params); err != nil {
		return models.TimelineEvent{}, err
	}
	return merged, nil
}

// mergeAttributes unions both attribute maps with the newer event winning
// collisions.
func mergeAttributes(a, b *models.TimelineEvent) models.Attributes {
	winner, loser := a, b
	if newerWins(b, a) {
		winner, loser = b, a
	}
	out := loser.CustomAttributes.Clone()
	for k, v := range winner.CustomAttributes {
		out[k] = v.Clone()
	}
	return out
}

// newerWins reports whether x beats y in an attribute collision.
func newerWins(x, y *models.TimelineEvent) bool {
	if !x.UpdatedAt.Equal(y.UpdatedAt) {
		return x.UpdatedAt.After(y.UpdatedAt)
	}
	return x.ID > y.ID
}

func rederive(e *models.TimelineEvent, photos PhotoIndex, params clustering.Params) error {
	recs, err := photos.records(e.MemberPhotoIDs)
	if err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	clustering.Rederive(recs, params).Apply(e)
	return nil
}
