// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/momentline/internal/models"
)

// File is the on-disk policy format.
//
//	event_types:
//	  fallback: moment
//	  rules:
//	    - type: renovation_phase
//	      kinds: [project]
//	      min_span: 24h
//	defaults:
//	  - kind: project
//	    event_type: "*"
//	    attributes:
//	      cost: 0
//	  - context: kitchen-2026
//	    event_type: renovation_phase
//	    attributes:
//	      room: kitchen
type File struct {
	EventTypes struct {
		Fallback string `yaml:"fallback"`
		Rules    []Rule `yaml:"rules"`
	} `yaml:"event_types"`
	Defaults []DefaultsEntry `yaml:"defaults"`
}

// DefaultsEntry targets either a context ID or a context kind. Omitting
// both applies the entry to every context.
type DefaultsEntry struct {
	Context    string         `yaml:"context"`
	Kind       string         `yaml:"kind"`
	EventType  string         `yaml:"event_type"`
	Attributes map[string]any `yaml:"attributes"`
}

// Load reads a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	p, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a policy document.
func Parse(r io.Reader) (*Policy, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode policy: %w", err)
	}
	return f.Build()
}

// Build validates the decoded file and constructs the policy.
func (f *File) Build() (*Policy, error) {
	for i, rule := range f.EventTypes.Rules {
		if rule.Type == "" {
			return nil, fmt.Errorf("rule %d: type is required", i)
		}
		for _, k := range rule.Kinds {
			if string(k) != Wildcard && !k.Valid() {
				return nil, fmt.Errorf("rule %d: unknown context kind %q", i, k)
			}
		}
		if rule.MaxSpan > 0 && rule.MinSpan > rule.MaxSpan {
			return nil, fmt.Errorf("rule %d: min_span exceeds max_span", i)
		}
	}

	table := NewTable()
	for i, entry := range f.Defaults {
		if entry.Context != "" && entry.Kind != "" {
			return nil, fmt.Errorf("defaults %d: set either context or kind, not both", i)
		}
		attrs, err := models.AttributesFromAny(entry.Attributes)
		if err != nil {
			return nil, fmt.Errorf("defaults %d: %w", i, err)
		}
		eventType := entry.EventType
		if eventType == "" {
			eventType = Wildcard
		}
		switch {
		case entry.Context != "":
			table.SetForContext(entry.Context, eventType, attrs)
		case entry.Kind != "":
			kind, ok := models.ParseContextKind(entry.Kind)
			if !ok && entry.Kind != Wildcard {
				return nil, fmt.Errorf("defaults %d: unknown context kind %q", i, entry.Kind)
			}
			if entry.Kind == Wildcard {
				kind = Wildcard
			}
			table.SetForKind(string(kind), eventType, attrs)
		default:
			table.SetForKind(Wildcard, eventType, attrs)
		}
	}

	return &Policy{
		Resolver: &RuleResolver{Rules: f.EventTypes.Rules, Fallback: f.EventTypes.Fallback},
		Defaults: table,
	}, nil
}
