// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package policy

import (
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// DefaultEventType is used when no rule matches.
const DefaultEventType = "moment"

// Rule maps cluster characteristics to an event type. Zero-valued
// conditions are ignored; all set conditions must hold.
type Rule struct {
	Type            string               `yaml:"type"`
	Kinds           []models.ContextKind `yaml:"kinds"`
	MinPhotos       int                  `yaml:"min_photos"`
	MinSpan         time.Duration        `yaml:"min_span"`
	MaxSpan         time.Duration        `yaml:"max_span"`
	Burst           *bool                `yaml:"burst"`
	Fuzzy           *bool                `yaml:"fuzzy"`
	MinRadiusMeters float64              `yaml:"min_radius_m"`
}

// Matches reports whether the rule applies.
func (r *Rule) Matches(owner models.Owner, s ClusterSummary) bool {
	if len(r.Kinds) > 0 {
		found := false
		for _, k := range r.Kinds {
			if k == owner.ContextKind || string(k) == Wildcard {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.MinPhotos > 0 && s.PhotoCount < r.MinPhotos {
		return false
	}
	if r.MinSpan > 0 && s.Span < r.MinSpan {
		return false
	}
	if r.MaxSpan > 0 && s.Span > r.MaxSpan {
		return false
	}
	if r.Burst != nil && *r.Burst != s.IsBurst {
		return false
	}
	if r.Fuzzy != nil && *r.Fuzzy != s.Fuzzy {
		return false
	}
	if r.MinRadiusMeters > 0 && s.RadiusMeters < r.MinRadiusMeters {
		return false
	}
	return true
}

// RuleResolver picks the type of the first matching rule.
type RuleResolver struct {
	Rules    []Rule
	Fallback string
}

// ResolveEventType implements EventTypeResolver.
func (r *RuleResolver) ResolveEventType(owner models.Owner, s ClusterSummary) string {
	for i := range r.Rules {
		if r.Rules[i].Matches(owner, s) {
			return r.Rules[i].Type
		}
	}
	if r.Fallback != "" {
		return r.Fallback
	}
	return DefaultEventType
}

func boolPtr(b bool) *bool { return &b }

// Builtin returns the policy used when no policy file is configured.
func Builtin() *Policy {
	resolver := &RuleResolver{
		Rules: []Rule{
			{Type: "memory", Fuzzy: boolPtr(true)},
			{Type: "trip", MinSpan: 24 * time.Hour, MinRadiusMeters: 50_000},
			{Type: "milestone", Kinds: []models.ContextKind{models.ContextProject, models.ContextBusiness}, MinSpan: 24 * time.Hour},
			{Type: "multi_day", MinSpan: 24 * time.Hour},
			{Type: "burst", Burst: boolPtr(true), MaxSpan: time.Minute},
		},
		Fallback: DefaultEventType,
	}

	table := NewTable()
	table.SetForKind(string(models.ContextProject), Wildcard, models.Attributes{
		"phase": models.String("unspecified"),
	})
	table.SetForKind(string(models.ContextBusiness), Wildcard, models.Attributes{
		"status": models.String("draft"),
	})
	table.SetForKind(string(models.ContextPet), Wildcard, models.Attributes{
		"milestone": models.Bool(false),
	})

	return &Policy{Resolver: resolver, Defaults: table}
}
