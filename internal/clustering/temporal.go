// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"sort"
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// GroupByTime partitions records into temporal clusters.
//
// Exact and fuzzy records travel in separate streams (fuzzy ones further
// split by granularity under FuzzyPerGranularity). Within a stream a new
// cluster starts only when the gap to the previous record exceeds window.
// Clusters are returned ordered by their first anchor, ties by first ID.
func GroupByTime(records []*models.PhotoRecord, window time.Duration, policy FuzzyPolicy) []*Cluster {
	streams := make(map[string][]*models.PhotoRecord)
	for _, r := range records {
		key := streamKey(r, policy)
		streams[key] = append(streams[key], r)
	}

	keys := make([]string, 0, len(streams))
	for k := range streams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var clusters []*Cluster
	for _, k := range keys {
		for _, group := range chainByTime(streams[k], window) {
			clusters = append(clusters, NewCluster(group))
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return models.AnchorLess(clusters[i].Members[0], clusters[j].Members[0])
	})
	return clusters
}

func streamKey(r *models.PhotoRecord, policy FuzzyPolicy) string {
	if r.IsExact() {
		return "exact"
	}
	if policy == FuzzyCombined {
		return "fuzzy"
	}
	return "fuzzy:" + string(r.FuzzyDate.Granularity)
}

// chainByTime is the single-linkage sorted scan.
func chainByTime(stream []*models.PhotoRecord, window time.Duration) [][]*models.PhotoRecord {
	if len(stream) == 0 {
		return nil
	}
	sorted := append([]*models.PhotoRecord(nil), stream...)
	sortRecords(sorted)

	var groups [][]*models.PhotoRecord
	current := []*models.PhotoRecord{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Anchor().Sub(sorted[i-1].Anchor())
		if gap > window {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, sorted[i])
	}
	return append(groups, current)
}
