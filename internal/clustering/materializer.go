// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
)

// eventNamespace seeds deterministic event IDs.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tomtom215/momentline/events"))

// Derived holds every event field computed from membership alone.
type Derived struct {
	KeyPhotoID  string
	Timestamp   *time.Time
	FuzzyDate   *models.FuzzyDate
	Location    *models.Coordinate
	Title       string
	Description string
	IsBurst     bool
	Bursts      []Burst
}

// Apply copies the derived fields onto e. Membership, ownership, type and
// attributes are left alone.
func (d Derived) Apply(e *models.TimelineEvent) {
	e.KeyPhotoID = d.KeyPhotoID
	e.Timestamp = d.Timestamp
	e.FuzzyDate = d.FuzzyDate
	e.Location = d.Location
	e.Title = d.Title
	e.Description = d.Description
	e.IsBurst = d.IsBurst
}

// Rederive recomputes the derived fields for an arbitrary membership using
// the burst and caption rules of p. The override layer calls this after a
// split or merge.
func Rederive(members []*models.PhotoRecord, p Params) Derived {
	p = p.withDefaults()
	c := NewCluster(members)
	DetectBursts(c, p.BurstMinCount, p.BurstGapThreshold)
	return derive(c, p.CaptionSeparator)
}

func derive(c *Cluster, separator string) Derived {
	d := Derived{
		KeyPhotoID: c.KeyPhotoID,
		IsBurst:    c.IsBurst,
		Bursts:     c.Bursts,
	}
	if c.Centroid != nil {
		loc := *c.Centroid
		d.Location = &loc
	}

	var key *models.PhotoRecord
	for _, m := range c.Members {
		if m.ID == c.KeyPhotoID {
			key = m
			break
		}
	}
	if key != nil && key.IsExact() {
		ts := *key.CapturedAt
		d.Timestamp = &ts
	} else {
		d.FuzzyDate = DominantFuzzyDate(c.Members)
	}

	if key != nil {
		d.Title = key.Caption
	}
	d.Description = joinCaptions(c.Members, separator)
	return d
}

// DominantFuzzyDate picks the most common fuzzy range among members. Ties go
// to the finer granularity, then the earlier start. Nil when no member is
// fuzzy-dated.
func DominantFuzzyDate(members []*models.PhotoRecord) *models.FuzzyDate {
	counts := make(map[string]int)
	ranges := make(map[string]models.FuzzyDate)
	for _, m := range members {
		if m.IsExact() || m.FuzzyDate == nil {
			continue
		}
		k := m.FuzzyDate.Key()
		counts[k]++
		ranges[k] = *m.FuzzyDate
	}
	if len(counts) == 0 {
		return nil
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := ranges[keys[i]], ranges[keys[j]]
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		if a.Granularity.Rank() != b.Granularity.Rank() {
			return a.Granularity.Rank() < b.Granularity.Rank()
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return keys[i] < keys[j]
	})
	best := ranges[keys[0]]
	return &best
}

// joinCaptions returns the distinct non-empty captions in member order.
func joinCaptions(members []*models.PhotoRecord, separator string) string {
	seen := make(map[string]struct{})
	var captions []string
	for _, m := range members {
		if !m.HasCaption() {
			continue
		}
		if _, ok := seen[m.Caption]; ok {
			continue
		}
		seen[m.Caption] = struct{}{}
		captions = append(captions, m.Caption)
	}
	switch len(captions) {
	case 0:
		return ""
	case 1:
		return captions[0]
	default:
		return strings.Join(captions, separator)
	}
}

// Summarize describes a finalized cluster for event type resolution.
func Summarize(c *Cluster) policy.ClusterSummary {
	s := policy.ClusterSummary{
		PhotoCount: len(c.Members),
		Start:      c.Start,
		End:        c.End,
		Span:       c.Span(),
		IsBurst:    c.IsBurst,
		BurstCount: len(c.Bursts),
		Fuzzy:      true,
	}
	points := locations(c.Members)
	s.Located = len(points)
	s.RadiusMeters = radiusMeters(c.Centroid, points)
	for _, m := range c.Members {
		if m.IsExact() {
			s.Fuzzy = false
		}
		if m.HasCaption() {
			s.CaptionCount++
		}
	}
	if s.Fuzzy {
		if fd := DominantFuzzyDate(c.Members); fd != nil {
			s.Granularity = fd.Granularity
		}
	}
	return s
}

// EventID returns the deterministic ID of an event with the given members.
func EventID(contextID string, memberIDs []string) string {
	ids := append([]string(nil), memberIDs...)
	sort.Strings(ids)
	name := contextID + "\x00" + strings.Join(ids, "\x00")
	return uuid.NewSHA1(eventNamespace, []byte(name)).String()
}

// Materialize turns a finalized cluster into an event. Bursts must already
// be detected. existing carries attributes from an earlier materialization
// of the same event; those are kept and defaults only fill absent keys.
// CreatedAt and UpdatedAt are left for the caller.
func Materialize(
	c *Cluster,
	owner models.Owner,
	resolver policy.EventTypeResolver,
	defaults policy.DefaultsProvider,
	existing models.Attributes,
	separator string,
) models.TimelineEvent {
	if separator == "" {
		separator = DefaultCaptionSeparator
	}
	if c.KeyPhotoID == "" {
		c.KeyPhotoID = SelectKeyPhoto(c.Members)
	}

	ids := c.MemberIDs()
	eventType := resolver.ResolveEventType(owner, Summarize(c))

	attrs := existing.Clone()
	if defaults != nil {
		attrs.SeedDefaults(defaults.Defaults(owner.ContextID, owner.ContextKind, eventType))
	}

	e := models.TimelineEvent{
		ID:               EventID(owner.ContextID, ids),
		ContextID:        owner.ContextID,
		ContextKind:      owner.ContextKind,
		OwnerID:          owner.OwnerID,
		EventType:        eventType,
		CustomAttributes: attrs,
		MemberPhotoIDs:   ids,
	}
	derive(c, separator).Apply(&e)
	return e
}
