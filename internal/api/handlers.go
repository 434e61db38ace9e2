// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"context"
	"time"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
)

// EventService is the override coordinator as seen by the handlers.
type EventService interface {
	Import(ctx context.Context, owner models.Owner, raws []models.RawPhoto) (*clustering.Result, error)
	Split(ctx context.Context, eventID string, subset []string) (kept, split models.TimelineEvent, err error)
	Merge(ctx context.Context, eventA, eventB string) (models.TimelineEvent, error)
	SetAttributes(ctx context.Context, eventID string, set models.Attributes, remove []string) (models.TimelineEvent, error)
	Event(eventID string) (models.TimelineEvent, error)
	Events(contextID string) []models.TimelineEvent
	Contexts() []models.Owner
}

// Pinger reports storage health.
type Pinger interface {
	Ping() error
}

// Handler serves the Momentline API.
type Handler struct {
	events       EventService
	store        Pinger
	maxBodyBytes int64
	startTime    time.Time
}

// NewHandler creates a handler. store may be nil when running without
// persistence; maxBodyBytes <= 0 disables the body limit.
func NewHandler(events EventService, store Pinger, maxBodyBytes int64) *Handler {
	return &Handler{
		events:       events,
		store:        store,
		maxBodyBytes: maxBodyBytes,
		startTime:    time.Now(),
	}
}
