// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/momentline/internal/metrics"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/override"
)

func contextKey(contextID string) []byte {
	return []byte(contextKeyPrefix + contextID)
}

func eventKey(eventID string) []byte {
	return []byte(eventKeyPrefix + eventID)
}

func ctxEventKey(contextID, eventID string) []byte {
	return []byte(ctxEventKeyPrefix + contextID + ":" + eventID)
}

func photoKey(contextID, photoID string) []byte {
	return []byte(photoKeyPrefix + contextID + ":" + photoID)
}

// ApplyChanges writes one change set in a single transaction.
func (s *EventStore) ApplyChanges(ctx context.Context, cs *override.ChangeSet) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("apply_changes", time.Since(start), err) }()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	contextID := cs.Owner.ContextID
	if contextID == "" || strings.Contains(contextID, ":") {
		return fmt.Errorf("invalid context id %q", contextID)
	}

	owner, err := json.Marshal(cs.Owner)
	if err != nil {
		return fmt.Errorf("marshal owner: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(contextKey(contextID), owner); err != nil {
			return fmt.Errorf("set context: %w", err)
		}

		for _, id := range cs.DeleteEvents {
			if err := txn.Delete(eventKey(id)); err != nil {
				return fmt.Errorf("delete event %s: %w", id, err)
			}
			if err := txn.Delete(ctxEventKey(contextID, id)); err != nil {
				return fmt.Errorf("delete event index %s: %w", id, err)
			}
		}

		for i := range cs.PutEvents {
			e := &cs.PutEvents[i]
			if e.ContextID != contextID {
				return fmt.Errorf("event %s belongs to context %s, not %s", e.ID, e.ContextID, contextID)
			}
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal event %s: %w", e.ID, err)
			}
			if err := txn.Set(eventKey(e.ID), data); err != nil {
				return fmt.Errorf("set event %s: %w", e.ID, err)
			}
			if err := txn.Set(ctxEventKey(contextID, e.ID), []byte(e.ID)); err != nil {
				return fmt.Errorf("set event index %s: %w", e.ID, err)
			}
		}

		for i := range cs.PutPhotos {
			p := &cs.PutPhotos[i]
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal photo %s: %w", p.ID, err)
			}
			if err := txn.Set(photoKey(contextID, p.ID), data); err != nil {
				return fmt.Errorf("set photo %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Event reads one event by ID.
func (s *EventStore) Event(ctx context.Context, eventID string) (models.TimelineEvent, error) {
	var e models.TimelineEvent
	if err := s.checkOpen(); err != nil {
		return e, err
	}
	if err := ctx.Err(); err != nil {
		return e, err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(eventKey(eventID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	return e, err
}

// LoadAll reads every context with its events and photos, sorted by
// context ID.
func (s *EventStore) LoadAll(ctx context.Context) (snaps []override.Snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load_all", time.Since(start), err) }()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		owners, err := loadOwners(txn)
		if err != nil {
			return err
		}
		for _, owner := range owners {
			if err := ctx.Err(); err != nil {
				return err
			}
			snap := override.Snapshot{Owner: owner}
			if snap.Events, err = loadContextEvents(txn, owner.ContextID); err != nil {
				return err
			}
			if snap.Photos, err = loadContextPhotos(txn, owner.ContextID); err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Owner.ContextID < snaps[j].Owner.ContextID })
	return snaps, nil
}

func loadOwners(txn *badger.Txn) ([]models.Owner, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	var owners []models.Owner
	prefix := []byte(contextKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var o models.Owner
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &o)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		owners = append(owners, o)
	}
	return owners, nil
}

func loadContextEvents(txn *badger.Txn, contextID string) ([]models.TimelineEvent, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	prefix := []byte(ctxEventKeyPrefix + contextID + ":")
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(func(val []byte) error {
			ids = append(ids, string(val))
			return nil
		}); err != nil {
			return nil, err
		}
	}

	events := make([]models.TimelineEvent, 0, len(ids))
	for _, id := range ids {
		item, err := txn.Get(eventKey(id))
		if err != nil {
			return nil, fmt.Errorf("event %s indexed under %s: %w", id, contextID, err)
		}
		var e models.TimelineEvent
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		}); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", id, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func loadContextPhotos(txn *badger.Txn, contextID string) ([]models.PhotoRecord, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	var photos []models.PhotoRecord
	prefix := []byte(photoKeyPrefix + contextID + ":")
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var p models.PhotoRecord
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		photos = append(photos, p)
	}
	return photos, nil
}
