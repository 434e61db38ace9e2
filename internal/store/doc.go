// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package store persists timeline events and photo records in BadgerDB.

# Key Layout

	context:<contextID>              -> models.Owner (JSON)
	event:<eventID>                  -> models.TimelineEvent (JSON)
	ctxevent:<contextID>:<eventID>   -> eventID
	photo:<contextID>:<photoID>      -> models.PhotoRecord (JSON)

EventStore implements override.Persister: every change set is written in a
single Badger transaction, so a crash never leaves half of a split or merge
on disk. LoadAll rebuilds the coordinator state at startup.

Values are encoded with goccy/go-json. Value log garbage collection is run
periodically by the supervisor through RunGC.
*/
package store
