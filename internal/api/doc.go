// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package api exposes the event clustering engine and the manual override
layer over HTTP using the Chi router.

# Endpoints

	GET    /api/v1/health/live                      liveness
	GET    /api/v1/health/ready                     readiness (store ping)
	GET    /api/v1/contexts                         known contexts
	POST   /api/v1/contexts/{contextID}/imports     cluster a photo batch
	GET    /api/v1/contexts/{contextID}/events      events in timeline order
	GET    /api/v1/events/{eventID}                 one event
	POST   /api/v1/events/{eventID}/split           move photos into a new event
	POST   /api/v1/events/merge                     merge two events
	PATCH  /api/v1/events/{eventID}/attributes      set or remove custom attributes
	GET    /metrics                                 Prometheus metrics

# Responses

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "INVALID_SPLIT", "message": "..."}}

Domain errors map to stable codes:

	MISSING_TEMPORAL_ANCHOR, PHOTO_REJECTED  422
	INVALID_SPLIT                            422
	INCOMPATIBLE_MERGE                       409
	CONFIGURATION_ERROR                      400
	NOT_FOUND                                404
	VALIDATION_FAILED                        400

# Middleware

Global: request ID with logging context, real IP, panic recovery, CORS.
API routes add IP-based rate limiting (go-chi/httprate) and Prometheus
request metrics labelled by route pattern.
*/
package api
