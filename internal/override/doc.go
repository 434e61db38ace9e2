// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package override applies manual corrections to clustered timeline events.

Split and Merge are pure: they take events and a photo index and return new
events without touching their inputs. Coordinator owns the live event set
of every context and applies imports, splits, merges and attribute edits as
commit-or-fail transactions.

# Concurrency

Each context has its own mutex, so overrides in one context never wait on
another. The per-context state is an immutable snapshot replaced on commit;
readers take a shared lock only long enough to grab the current snapshot.

# Persistence

A Coordinator may be given a Persister. Every change is persisted before it
becomes visible. When persistence fails the in-memory set is unchanged.
*/
package override
