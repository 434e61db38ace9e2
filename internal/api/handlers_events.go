// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/momentline/internal/logging"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/validation"
)

// contextIDParam reads and checks the {contextID} path parameter.
func contextIDParam(rw *ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "contextID")
	if !validation.ValidContextID(id) {
		rw.ValidationError("contextID may only contain letters, digits, '-' and '_' (at most 128 characters)",
			map[string]interface{}{"field": "contextID", "value": id})
		return "", false
	}
	return id, true
}

// ListContexts returns the owner of every known context.
func (h *Handler) ListContexts(w http.ResponseWriter, r *http.Request) {
	owners := h.events.Contexts()
	NewResponseWriter(w, r).SuccessList(owners, len(owners))
}

// ImportPhotos clusters a batch of raw photos into new events for a
// context. The whole batch is rejected if any photo is invalid.
func (h *Handler) ImportPhotos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	contextID, ok := contextIDParam(rw, r)
	if !ok {
		return
	}

	var req ImportRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	owner := models.Owner{
		ContextID:   contextID,
		ContextKind: models.ContextKind(req.ContextKind),
		OwnerID:     req.OwnerID,
	}
	ctx := logging.ContextWithTimeline(r.Context(), contextID)
	res, err := h.events.Import(ctx, owner, req.Photos)
	if err != nil {
		writeServiceError(rw, r.WithContext(ctx), err)
		return
	}

	rw.Created(ImportResponse{
		ContextID: contextID,
		Photos:    len(res.Photos),
		Events:    res.Events,
		Bursts:    res.Bursts,
	})
}

// ListEvents returns a context's events in timeline order. An unknown
// context has no events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	contextID, ok := contextIDParam(rw, r)
	if !ok {
		return
	}
	events := h.events.Events(contextID)
	rw.SuccessList(events, len(events))
}

// GetEvent returns one event.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, err := h.events.Event(chi.URLParam(r, "eventID"))
	if err != nil {
		writeServiceError(rw, r, err)
		return
	}
	rw.Success(e)
}

// SplitEvent moves the listed photos out of an event into a new one.
func (h *Handler) SplitEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req SplitRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	kept, split, err := h.events.Split(r.Context(), chi.URLParam(r, "eventID"), req.PhotoIDs)
	if err != nil {
		writeServiceError(rw, r, err)
		return
	}
	rw.Created(SplitResponse{Kept: kept, Split: split})
}

// MergeEvents merges event_b into event_a.
func (h *Handler) MergeEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req MergeRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	merged, err := h.events.Merge(r.Context(), req.EventA, req.EventB)
	if err != nil {
		writeServiceError(rw, r, err)
		return
	}
	rw.Success(merged)
}

// UpdateAttributes sets and removes custom attributes on an event.
func (h *Handler) UpdateAttributes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req AttributesRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	updated, err := h.events.SetAttributes(r.Context(), chi.URLParam(r, "eventID"), req.Set, req.Remove)
	if err != nil {
		writeServiceError(rw, r, err)
		return
	}
	rw.Success(updated)
}
