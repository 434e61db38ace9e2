// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/momentline/internal/logging"
	"github.com/tomtom215/momentline/internal/metrics"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/validation"
)

// rejectionDetail is one entry of a rejected batch in error details.
type rejectionDetail struct {
	Index   int    `json:"index"`
	PhotoID string `json:"photo_id,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// writeServiceError maps clustering and override errors to responses.
// Unknown errors are logged and reported as 500 without internals.
func writeServiceError(rw *ResponseWriter, r *http.Request, err error) {
	var rejErr *models.RejectionError
	switch {
	case errors.As(err, &rejErr):
		code := ErrCodePhotoRejected
		if allMissingAnchor(rejErr) {
			code = ErrCodeMissingTemporalAnchor
		}
		details := make([]rejectionDetail, len(rejErr.Rejections))
		for i, rej := range rejErr.Rejections {
			details[i] = rejectionDetail{
				Index:   rej.Index,
				PhotoID: rej.PhotoID,
				Reason:  metrics.ReasonLabel(rej.Reason),
				Message: rej.Error(),
			}
		}
		rw.ErrorWithDetails(http.StatusUnprocessableEntity, code, err.Error(),
			map[string]interface{}{"rejections": details})
	case errors.Is(err, models.ErrInvalidSplit):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeInvalidSplit, err.Error())
	case errors.Is(err, models.ErrIncompatibleMerge):
		rw.Error(http.StatusConflict, ErrCodeIncompatibleMerge, err.Error())
	case errors.Is(err, models.ErrEventNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, models.ErrConfiguration):
		rw.Error(http.StatusBadRequest, ErrCodeConfiguration, err.Error())
	default:
		logging.CtxErr(r.Context(), err).Msg("Request failed")
		rw.InternalError("internal error")
	}
}

func allMissingAnchor(e *models.RejectionError) bool {
	for _, rej := range e.Rejections {
		if !errors.Is(rej.Reason, models.ErrMissingTemporalAnchor) {
			return false
		}
	}
	return len(e.Rejections) > 0
}

// writeDecodeError reports a body that could not be decoded.
func writeDecodeError(rw *ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, err.Error())
		return
	}
	rw.BadRequest(err.Error())
}

// validateRequest runs struct validation and writes a 400 on failure.
// Returns false when a response was written.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}
