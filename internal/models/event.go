// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package models

import (
	"strings"
	"time"
)

// ContextKind is the thematic category of a context.
type ContextKind string

const (
	ContextPerson   ContextKind = "person"
	ContextPet      ContextKind = "pet"
	ContextProject  ContextKind = "project"
	ContextBusiness ContextKind = "business"
)

// Valid reports whether k is one of the known kinds.
func (k ContextKind) Valid() bool {
	switch k {
	case ContextPerson, ContextPet, ContextProject, ContextBusiness:
		return true
	}
	return false
}

// ParseContextKind parses a kind name case-insensitively.
func ParseContextKind(s string) (ContextKind, bool) {
	k := ContextKind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Owner identifies who a batch of events belongs to.
type Owner struct {
	ContextID   string      `json:"context_id" validate:"required,contextid"`
	ContextKind ContextKind `json:"context_kind" validate:"required,contextkind"`
	OwnerID     string      `json:"owner_id" validate:"required,max=128"`
}

// TimelineEvent is the durable grouping of photos rendered on a timeline.
type TimelineEvent struct {
	ID               string      `json:"id"`
	ContextID        string      `json:"context_id"`
	ContextKind      ContextKind `json:"context_kind"`
	OwnerID          string      `json:"owner_id"`
	EventType        string      `json:"event_type"`
	Timestamp        *time.Time  `json:"timestamp,omitempty"`
	FuzzyDate        *FuzzyDate  `json:"fuzzy_date,omitempty"`
	Location         *Coordinate `json:"location,omitempty"`
	CustomAttributes Attributes  `json:"custom_attributes"`
	MemberPhotoIDs   []string    `json:"member_photo_ids"`
	KeyPhotoID       string      `json:"key_photo_id"`
	Title            string      `json:"title,omitempty"`
	Description      string      `json:"description,omitempty"`
	IsBurst          bool        `json:"is_burst,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Owner returns the ownership triple of the event.
func (e *TimelineEvent) Owner() Owner {
	return Owner{ContextID: e.ContextID, ContextKind: e.ContextKind, OwnerID: e.OwnerID}
}

// HasMember reports whether photoID belongs to the event.
func (e *TimelineEvent) HasMember(photoID string) bool {
	for _, id := range e.MemberPhotoIDs {
		if id == photoID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to mutate independently.
func (e *TimelineEvent) Clone() TimelineEvent {
	out := *e
	out.CustomAttributes = e.CustomAttributes.Clone()
	out.MemberPhotoIDs = append([]string(nil), e.MemberPhotoIDs...)
	if e.Timestamp != nil {
		ts := *e.Timestamp
		out.Timestamp = &ts
	}
	if e.FuzzyDate != nil {
		fd := *e.FuzzyDate
		out.FuzzyDate = &fd
	}
	if e.Location != nil {
		loc := *e.Location
		out.Location = &loc
	}
	return out
}

// SortTime is the instant an event is placed at on a timeline.
func (e *TimelineEvent) SortTime() time.Time {
	if e.Timestamp != nil {
		return *e.Timestamp
	}
	if e.FuzzyDate != nil {
		return e.FuzzyDate.Midpoint()
	}
	return time.Time{}
}
