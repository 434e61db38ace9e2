// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// DetectBursts annotates c with its bursts and key photo. It never changes
// membership: a burst is a rendering hint, not a separate event.
//
// A burst is a maximal run of at least minCount consecutive exactly-timed
// members, each no more than maxGap after the previous one. Fuzzy-dated
// members break a run.
func DetectBursts(c *Cluster, minCount int, maxGap time.Duration) {
	c.Bursts = findBursts(c.Members, minCount, maxGap)
	c.IsBurst = len(c.Bursts) > 0
	c.KeyPhotoID = SelectKeyPhoto(c.Members)
}

func findBursts(members []*models.PhotoRecord, minCount int, maxGap time.Duration) []Burst {
	var (
		bursts []Burst
		run    []*models.PhotoRecord
	)
	flush := func() {
		if len(run) >= minCount {
			ids := make([]string, len(run))
			for i, m := range run {
				ids[i] = m.ID
			}
			bursts = append(bursts, Burst{MemberIDs: ids, KeyPhotoID: SelectKeyPhoto(run)})
		}
		run = nil
	}

	for _, m := range members {
		if !m.IsExact() {
			flush()
			continue
		}
		if len(run) > 0 && m.CapturedAt.Sub(*run[len(run)-1].CapturedAt) > maxGap {
			flush()
		}
		run = append(run, m)
	}
	flush()
	return bursts
}
