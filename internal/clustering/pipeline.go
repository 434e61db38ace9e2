// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
)

// Engine runs the automatic clustering pass. It holds no per-run state and
// is safe for concurrent use.
type Engine struct {
	Resolver policy.EventTypeResolver
	Defaults policy.DefaultsProvider

	// Workers bounds the per-cluster fan-out. Zero means runtime.NumCPU().
	Workers int

	// Clock stamps CreatedAt and UpdatedAt. Defaults to time.Now.
	Clock func() time.Time
}

// NewEngine returns an engine using the given policy hooks.
func NewEngine(resolver policy.EventTypeResolver, defaults policy.DefaultsProvider) *Engine {
	return &Engine{
		Resolver: resolver,
		Defaults: defaults,
		Workers:  runtime.NumCPU(),
		Clock:    time.Now,
	}
}

// Result is the output of one run.
type Result struct {
	// Events in chronological order of their earliest member.
	Events []models.TimelineEvent

	// Photos are the normalized records, keyed by photo ID.
	Photos map[string]models.PhotoRecord

	// Bursts per event ID, for rendering.
	Bursts map[string][]Burst
}

// Cluster groups raws into events for owner. Either every photo lands in
// exactly one event or the whole batch fails.
func (e *Engine) Cluster(raws []models.RawPhoto, owner models.Owner, params Params) ([]models.TimelineEvent, error) {
	res, err := e.Run(raws, owner, params)
	if err != nil {
		return nil, err
	}
	return res.Events, nil
}

// Run is Cluster but also returns the normalized photos and burst hints.
func (e *Engine) Run(raws []models.RawPhoto, owner models.Owner, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if e.Resolver == nil {
		return nil, fmt.Errorf("%w: no event type resolver", models.ErrConfiguration)
	}
	params = params.withDefaults()

	records, rejected := NormalizeBatch(raws)
	if len(rejected) > 0 {
		return nil, &models.RejectionError{Rejections: rejected}
	}

	ptrs := make([]*models.PhotoRecord, len(records))
	photos := make(map[string]models.PhotoRecord, len(records))
	for i := range records {
		ptrs[i] = &records[i]
		photos[records[i].ID] = records[i]
	}

	temporal := GroupByTime(ptrs, params.TimeWindow, params.FuzzyPolicy)
	slots := make([][]materialized, len(temporal))
	now := e.now()

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, tc := range temporal {
		g.Go(func() error {
			parts := RefineBySpace(tc, params.DistanceThreshold)
			out := make([]materialized, len(parts))
			for j, part := range parts {
				DetectBursts(part, params.BurstMinCount, params.BurstGapThreshold)
				ev := Materialize(part, owner, e.Resolver, e.Defaults, nil, params.CaptionSeparator)
				ev.CreatedAt = now
				ev.UpdatedAt = now
				out[j] = materialized{event: ev, first: part.Members[0], bursts: part.Bursts}
			}
			slots[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []materialized
	for _, s := range slots {
		all = append(all, s...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return models.AnchorLess(all[i].first, all[j].first)
	})

	res := &Result{
		Events: make([]models.TimelineEvent, len(all)),
		Photos: photos,
		Bursts: make(map[string][]Burst),
	}
	for i, m := range all {
		res.Events[i] = m.event
		if len(m.bursts) > 0 {
			res.Bursts[m.event.ID] = m.bursts
		}
	}
	return res, nil
}

type materialized struct {
	event  models.TimelineEvent
	first  *models.PhotoRecord
	bursts []Burst
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now().UTC()
	}
	return e.Clock().UTC()
}
