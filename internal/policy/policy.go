// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Package policy holds the per-context rules the clustering engine consults
// but does not own: which event type a cluster becomes, and which custom
// attributes a new event of that type starts with.
//
// Both are pluggable. The engine only depends on the EventTypeResolver and
// DefaultsProvider interfaces; Table and RuleResolver are the YAML-driven
// implementations shipped with the service.
package policy

import (
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// Wildcard matches any context, kind or event type in a Table or rule.
const Wildcard = "*"

// ClusterSummary is what an EventTypeResolver gets to look at.
type ClusterSummary struct {
	PhotoCount   int
	Start        time.Time
	End          time.Time
	Span         time.Duration
	Fuzzy        bool
	Granularity  models.Granularity
	IsBurst      bool
	BurstCount   int
	Located      int
	RadiusMeters float64
	CaptionCount int
}

// EventTypeResolver derives the event type discriminator for a cluster.
type EventTypeResolver interface {
	ResolveEventType(owner models.Owner, summary ClusterSummary) string
}

// DefaultsProvider returns the default custom attributes for an event type
// in a context. Implementations must return a map the caller may keep.
type DefaultsProvider interface {
	Defaults(contextID string, kind models.ContextKind, eventType string) models.Attributes
}

// ResolverFunc adapts a function to EventTypeResolver.
type ResolverFunc func(owner models.Owner, summary ClusterSummary) string

// ResolveEventType calls f.
func (f ResolverFunc) ResolveEventType(owner models.Owner, summary ClusterSummary) string {
	return f(owner, summary)
}

// DefaultsFunc adapts a function to DefaultsProvider.
type DefaultsFunc func(contextID string, kind models.ContextKind, eventType string) models.Attributes

// Defaults calls f.
func (f DefaultsFunc) Defaults(contextID string, kind models.ContextKind, eventType string) models.Attributes {
	return f(contextID, kind, eventType)
}

// NoDefaults seeds nothing.
type NoDefaults struct{}

// Defaults returns an empty map.
func (NoDefaults) Defaults(string, models.ContextKind, string) models.Attributes {
	return models.Attributes{}
}

// Policy bundles both halves, as loaded from a policy file.
type Policy struct {
	Resolver *RuleResolver
	Defaults *Table
}
