// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Package services adapts Momentline components to suture.Service.
//
// Each wrapper translates a component's own lifecycle (blocking
// ListenAndServe, periodic maintenance) into Serve(ctx) error and
// implements fmt.Stringer so supervisor logs name it.
package services
