// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package policy

import (
	"sync"

	"github.com/tomtom215/momentline/internal/models"
)

// Table is a DefaultsProvider backed by layered lookup tables.
//
// For a (context, kind, event type) request the layers are merged from least
// to most specific, later layers overriding earlier ones:
//
//	any kind / any type, any kind / type,
//	kind / any type,     kind / type,
//	context / any type,  context / type
type Table struct {
	mu        sync.RWMutex
	byContext map[string]map[string]models.Attributes
	byKind    map[string]map[string]models.Attributes
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		byContext: make(map[string]map[string]models.Attributes),
		byKind:    make(map[string]map[string]models.Attributes),
	}
}

// SetForKind registers defaults for a context kind ("*" for any) and event type ("*" for any).
func (t *Table) SetForKind(kind, eventType string, attrs models.Attributes) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set(t.byKind, kind, eventType, attrs)
}

// SetForContext registers defaults for one context ID and event type ("*" for any).
func (t *Table) SetForContext(contextID, eventType string, attrs models.Attributes) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set(t.byContext, contextID, eventType, attrs)
}

// Defaults implements DefaultsProvider.
func (t *Table) Defaults(contextID string, kind models.ContextKind, eventType string) models.Attributes {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := models.Attributes{}
	layers := []models.Attributes{
		lookup(t.byKind, Wildcard, Wildcard),
		lookup(t.byKind, Wildcard, eventType),
		lookup(t.byKind, string(kind), Wildcard),
		lookup(t.byKind, string(kind), eventType),
		lookup(t.byContext, contextID, Wildcard),
		lookup(t.byContext, contextID, eventType),
	}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v.Clone()
		}
	}
	return out
}

func set(m map[string]map[string]models.Attributes, outer, eventType string, attrs models.Attributes) {
	inner, ok := m[outer]
	if !ok {
		inner = make(map[string]models.Attributes)
		m[outer] = inner
	}
	merged := inner[eventType]
	if merged == nil {
		merged = models.Attributes{}
	}
	for k, v := range attrs {
		merged[k] = v.Clone()
	}
	inner[eventType] = merged
}

func lookup(m map[string]map[string]models.Attributes, outer, eventType string) models.Attributes {
	inner, ok := m[outer]
	if !ok {
		return nil
	}
	return inner[eventType]
}
