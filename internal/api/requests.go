// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
)

// ImportRequest is the body of POST /contexts/{contextID}/imports.
type ImportRequest struct {
	ContextKind string            `json:"context_kind" validate:"required,contextkind"`
	OwnerID     string            `json:"owner_id" validate:"required,max=128"`
	Photos      []models.RawPhoto `json:"photos" validate:"required,min=1"`
}

// ImportResponse reports the events created by an import.
type ImportResponse struct {
	ContextID string                        `json:"context_id"`
	Photos    int                           `json:"photos"`
	Events    []models.TimelineEvent        `json:"events"`
	Bursts    map[string][]clustering.Burst `json:"bursts,omitempty"`
}

// SplitRequest is the body of POST /events/{eventID}/split. An empty list
// is passed through and rejected as an invalid split.
type SplitRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"max=10000,dive,required,max=256"`
}

// SplitResponse holds both sides of a split.
type SplitResponse struct {
	Kept  models.TimelineEvent `json:"kept"`
	Split models.TimelineEvent `json:"split"`
}

// MergeRequest is the body of POST /events/merge. EventB is absorbed into
// EventA.
type MergeRequest struct {
	EventA string `json:"event_a" validate:"required,max=256"`
	EventB string `json:"event_b" validate:"required,max=256"`
}

// AttributesRequest is the body of PATCH /events/{eventID}/attributes.
type AttributesRequest struct {
	Set    models.Attributes `json:"set" validate:"max=256,dive,keys,attrkey,endkeys"`
	Remove []string          `json:"remove" validate:"max=256,dive,attrkey"`
}

// errBodyTooLarge marks a request body over the configured limit.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON decodes a single JSON object from the body, rejecting unknown
// fields and bodies over maxBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst interface{}) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("request body is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
