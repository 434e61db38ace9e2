// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package override

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/logging"
	"github.com/tomtom215/momentline/internal/metrics"
	"github.com/tomtom215/momentline/internal/models"
)

// Operation names used in metrics and audit records.
const (
	OpImport        = "import"
	OpSplit         = "split"
	OpMerge         = "merge"
	OpSetAttributes = "set_attributes"
)

// ChangeSet is one atomic change to a context.
type ChangeSet struct {
	Owner        models.Owner
	PutEvents    []models.TimelineEvent
	DeleteEvents []string
	PutPhotos    []models.PhotoRecord
}

// Persister stores change sets. ApplyChanges must be all-or-nothing.
type Persister interface {
	ApplyChanges(ctx context.Context, cs *ChangeSet) error
}

// ParamsFunc resolves clustering parameters for a context.
type ParamsFunc func(contextID string, kind models.ContextKind) clustering.Params

// CoordinatorConfig configures a Coordinator. Engine and Params are required.
type CoordinatorConfig struct {
	Engine    *clustering.Engine
	Params    ParamsFunc
	Persister Persister
	Audit     *logging.AuditLogger

	// MaxImportPhotos bounds a single import batch. 0 = unlimited.
	MaxImportPhotos int

	// Clock and NewID default to time.Now and UUIDv4.
	Clock func() time.Time
	NewID func() string
}

// Snapshot is the persisted state of one context.
type Snapshot struct {
	Owner  models.Owner
	Events []models.TimelineEvent
	Photos []models.PhotoRecord
}

// contextState is immutable once published; commits replace it.
type contextState struct {
	owner  models.Owner
	events map[string]models.TimelineEvent
	photos PhotoIndex
}

func (s *contextState) clone() *contextState {
	out := &contextState{
		owner:  s.owner,
		events: make(map[string]models.TimelineEvent, len(s.events)),
		photos: make(PhotoIndex, len(s.photos)),
	}
	for id, e := range s.events {
		out.events[id] = e
	}
	for id, p := range s.photos {
		out.photos[id] = p
	}
	return out
}

// Coordinator owns the event sets of all contexts and serializes changes
// per context.
type Coordinator struct {
	engine    *clustering.Engine
	params    ParamsFunc
	persister Persister
	audit     *logging.AuditLogger
	maxImport int
	clock     func() time.Time
	newID     func() string

	mu       sync.RWMutex // guards locks, contexts, eventCtx
	locks    map[string]*sync.Mutex
	contexts map[string]*contextState
	eventCtx map[string]string
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator(cfg CoordinatorConfig) (*Coordinator, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("%w: coordinator needs a clustering engine", models.ErrConfiguration)
	}
	if cfg.Params == nil {
		return nil, fmt.Errorf("%w: coordinator needs a params resolver", models.ErrConfiguration)
	}
	c := &Coordinator{
		engine:    cfg.Engine,
		params:    cfg.Params,
		persister: cfg.Persister,
		audit:     cfg.Audit,
		maxImport: cfg.MaxImportPhotos,
		clock:     cfg.Clock,
		newID:     cfg.NewID,
		locks:     make(map[string]*sync.Mutex),
		contexts:  make(map[string]*contextState),
		eventCtx:  make(map[string]string),
	}
	if c.audit == nil {
		c.audit = logging.NewAuditLogger()
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.newID == nil {
		c.newID = func() string { return uuid.New().String() }
	}
	return c, nil
}

// Restore installs previously persisted contexts without persisting them
// again. Intended for startup, before the coordinator serves requests.
func (c *Coordinator) Restore(snapshots []Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for i := range snapshots {
		snap := &snapshots[i]
		st := &contextState{
			owner:  snap.Owner,
			events: make(map[string]models.TimelineEvent, len(snap.Events)),
			photos: make(PhotoIndex, len(snap.Photos)),
		}
		for _, e := range snap.Events {
			st.events[e.ID] = e
			c.eventCtx[e.ID] = snap.Owner.ContextID
		}
		for _, p := range snap.Photos {
			st.photos[p.ID] = p
		}
		c.contexts[snap.Owner.ContextID] = st
		total += len(snap.Events)
	}
	metrics.EventsTracked.Set(float64(len(c.eventCtx)))
	logging.Info().Int("contexts", len(snapshots)).Int("events", total).Msg("Restored event sets")
}

// lockContext returns the held mutex of a context. Callers must Unlock it.
func (c *Coordinator) lockContext(contextID string) *sync.Mutex {
	c.mu.Lock()
	l, ok := c.locks[contextID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[contextID] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l
}

func (c *Coordinator) state(contextID string) *contextState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contexts[contextID]
}

func (c *Coordinator) contextOf(eventID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.eventCtx[eventID]
	return id, ok
}

// commit persists cs and then publishes next. Must be called with the
// context lock held.
func (c *Coordinator) commit(ctx context.Context, next *contextState, cs *ChangeSet) error {
	if c.persister != nil {
		if err := c.persister.ApplyChanges(ctx, cs); err != nil {
			return fmt.Errorf("persist %s: %w", cs.Owner.ContextID, err)
		}
	}

	contextID := cs.Owner.ContextID
	c.mu.Lock()
	c.contexts[contextID] = next
	for _, id := range cs.DeleteEvents {
		delete(c.eventCtx, id)
	}
	for i := range cs.PutEvents {
		c.eventCtx[cs.PutEvents[i].ID] = contextID
	}
	tracked := len(c.eventCtx)
	c.mu.Unlock()

	metrics.EventsTracked.Set(float64(tracked))
	return nil
}

func (c *Coordinator) now() time.Time {
	return c.clock().UTC()
}

func (c *Coordinator) finish(ctx context.Context, op string, start time.Time, ev *logging.AuditEvent, err error) {
	d := time.Since(start)
	metrics.RecordOverride(op, d, err)
	ev.Action = op
	ev.Duration = d
	ev.Err = err
	c.audit.Log(ctx, ev)
}

// Import clusters raws for owner and commits the resulting events and
// photos. Photos already known to the context are rejected as duplicates so
// every photo stays in exactly one event.
func (c *Coordinator) Import(ctx context.Context, owner models.Owner, raws []models.RawPhoto) (res *clustering.Result, err error) {
	start := time.Now()
	if logging.TimelineFromContext(ctx) == "" {
		ctx = logging.ContextWithTimeline(ctx, owner.ContextID)
	}
	audit := &logging.AuditEvent{ContextID: owner.ContextID, Photos: len(raws)}
	defer func() {
		if res != nil {
			audit.EventIDs = eventIDs(res.Events)
		}
		c.finish(ctx, OpImport, start, audit, err)
	}()

	if c.maxImport > 0 && len(raws) > c.maxImport {
		return nil, fmt.Errorf("%w: import of %d photos exceeds limit of %d",
			models.ErrConfiguration, len(raws), c.maxImport)
	}

	l := c.lockContext(owner.ContextID)
	defer l.Unlock()

	cur := c.state(owner.ContextID)
	if cur != nil && cur.owner != owner {
		return nil, fmt.Errorf("%w: context %s is owned by %s/%s", models.ErrConfiguration,
			owner.ContextID, cur.owner.ContextKind, cur.owner.OwnerID)
	}
	if cur != nil {
		if rej := knownPhotos(raws, cur.photos); len(rej) > 0 {
			metrics.RecordRejections(rej)
			return nil, &models.RejectionError{Rejections: rej}
		}
	}

	params := c.params(owner.ContextID, owner.ContextKind)
	clusterStart := time.Now()
	res, err = c.engine.Run(raws, owner, params)
	metrics.RecordClusterBatch(time.Since(clusterStart), len(raws), resultEvents(res), resultBursts(res), err)
	if err != nil {
		return nil, err
	}

	var next *contextState
	if cur == nil {
		next = &contextState{owner: owner, events: map[string]models.TimelineEvent{}, photos: PhotoIndex{}}
	} else {
		next = cur.clone()
	}

	cs := &ChangeSet{Owner: owner, PutEvents: res.Events}
	for _, e := range res.Events {
		next.events[e.ID] = e
	}
	ids := make([]string, 0, len(res.Photos))
	for id := range res.Photos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		next.photos[id] = res.Photos[id]
		cs.PutPhotos = append(cs.PutPhotos, res.Photos[id])
	}

	if err := c.commit(ctx, next, cs); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Int("photos", len(raws)).
		Int("events", len(res.Events)).
		Msg("Import committed")
	return res, nil
}

func knownPhotos(raws []models.RawPhoto, known PhotoIndex) []models.Rejection {
	var rej []models.Rejection
	for i := range raws {
		if raws[i].ID == nil {
			continue
		}
		if _, dup := known[*raws[i].ID]; dup {
			rej = append(rej, models.Rejection{Index: i, PhotoID: *raws[i].ID, Reason: models.ErrDuplicatePhoto})
		}
	}
	return rej
}

func resultEvents(res *clustering.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Events)
}

func resultBursts(res *clustering.Result) int {
	if res == nil {
		return 0
	}
	n := 0
	for _, b := range res.Bursts {
		n += len(b)
	}
	return n
}

// Split moves subset out of eventID into a new event and returns the kept
// and the new event.
func (c *Coordinator) Split(ctx context.Context, eventID string, subset []string) (kept, split models.TimelineEvent, err error) {
	start := time.Now()
	audit := &logging.AuditEvent{EventIDs: []string{eventID}, Photos: len(subset)}
	defer func() { c.finish(ctx, OpSplit, start, audit, err) }()

	contextID, ok := c.contextOf(eventID)
	if !ok {
		return kept, split, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}
	audit.ContextID = contextID

	l := c.lockContext(contextID)
	defer l.Unlock()

	cur := c.state(contextID)
	orig, ok := cur.events[eventID]
	if !ok {
		return kept, split, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}

	params := c.params(contextID, cur.owner.ContextKind)
	kept, split, err = Split(&orig, subset, cur.photos, params, c.now(), c.newID())
	if err != nil {
		return kept, split, err
	}

	next := cur.clone()
	next.events[kept.ID] = kept
	next.events[split.ID] = split
	cs := &ChangeSet{Owner: cur.owner, PutEvents: []models.TimelineEvent{kept, split}}
	if err = c.commit(ctx, next, cs); err != nil {
		return models.TimelineEvent{}, models.TimelineEvent{}, err
	}
	audit.EventIDs = []string{kept.ID, split.ID}
	return kept, split, nil
}

// Merge absorbs eventB into eventA. eventB is deleted.
func (c *Coordinator) Merge(ctx context.Context, eventA, eventB string) (merged models.TimelineEvent, err error) {
	start := time.Now()
	audit := &logging.AuditEvent{EventIDs: []string{eventA, eventB}}
	defer func() { c.finish(ctx, OpMerge, start, audit, err) }()

	ctxA, okA := c.contextOf(eventA)
	ctxB, okB := c.contextOf(eventB)
	switch {
	case !okA:
		return merged, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventA)
	case !okB:
		return merged, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventB)
	case eventA == eventB:
		return merged, fmt.Errorf("%w: cannot merge event %s with itself", models.ErrIncompatibleMerge, eventA)
	case ctxA != ctxB:
		return merged, fmt.Errorf("%w: events %s and %s belong to different contexts",
			models.ErrIncompatibleMerge, eventA, eventB)
	}
	audit.ContextID = ctxA

	l := c.lockContext(ctxA)
	defer l.Unlock()

	cur := c.state(ctxA)
	a, okA := cur.events[eventA]
	b, okB := cur.events[eventB]
	if !okA {
		return merged, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventA)
	}
	if !okB {
		return merged, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventB)
	}
	audit.Photos = len(b.MemberPhotoIDs)

	params := c.params(ctxA, cur.owner.ContextKind)
	merged, err = Merge(&a, &b, cur.photos, params, c.now())
	if err != nil {
		return merged, err
	}

	next := cur.clone()
	next.events[merged.ID] = merged
	delete(next.events, eventB)
	cs := &ChangeSet{
		Owner:        cur.owner,
		PutEvents:    []models.TimelineEvent{merged},
		DeleteEvents: []string{eventB},
	}
	if err = c.commit(ctx, next, cs); err != nil {
		return models.TimelineEvent{}, err
	}
	return merged, nil
}

// SetAttributes applies a user edit: keys in set are written, keys in
// remove are deleted. UpdatedAt advances even when nothing changed.
func (c *Coordinator) SetAttributes(ctx context.Context, eventID string, set models.Attributes, remove []string) (updated models.TimelineEvent, err error) {
	start := time.Now()
	audit := &logging.AuditEvent{EventIDs: []string{eventID}, Keys: append(set.Keys(), remove...)}
	defer func() { c.finish(ctx, OpSetAttributes, start, audit, err) }()

	for _, k := range remove {
		if _, both := set[k]; both {
			return updated, fmt.Errorf("%w: attribute %q is both set and removed", models.ErrConfiguration, k)
		}
	}

	contextID, ok := c.contextOf(eventID)
	if !ok {
		return updated, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}
	audit.ContextID = contextID

	l := c.lockContext(contextID)
	defer l.Unlock()

	cur := c.state(contextID)
	orig, ok := cur.events[eventID]
	if !ok {
		return updated, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}

	updated = orig.Clone()
	for k, v := range set {
		updated.CustomAttributes[k] = v.Clone()
	}
	for _, k := range remove {
		delete(updated.CustomAttributes, k)
	}
	updated.UpdatedAt = c.now()

	next := cur.clone()
	next.events[eventID] = updated
	if err = c.commit(ctx, next, &ChangeSet{Owner: cur.owner, PutEvents: []models.TimelineEvent{updated}}); err != nil {
		return models.TimelineEvent{}, err
	}
	return updated, nil
}

// Event returns a copy of one event.
func (c *Coordinator) Event(eventID string) (models.TimelineEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	contextID, ok := c.eventCtx[eventID]
	if !ok {
		return models.TimelineEvent{}, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}
	e := c.contexts[contextID].events[eventID]
	return e.Clone(), nil
}

// Events returns copies of a context's events in timeline order. An
// unknown context yields an empty slice.
func (c *Coordinator) Events(contextID string) []models.TimelineEvent {
	st := c.state(contextID)
	if st == nil {
		return []models.TimelineEvent{}
	}
	out := make([]models.TimelineEvent, 0, len(st.events))
	for _, e := range st.events {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].SortTime(), out[j].SortTime()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Photos returns the photo records of a context keyed by ID.
func (c *Coordinator) Photos(contextID string) PhotoIndex {
	st := c.state(contextID)
	out := PhotoIndex{}
	if st == nil {
		return out
	}
	for id, p := range st.photos {
		out[id] = p
	}
	return out
}

// Contexts lists the owners of every known context sorted by context ID.
func (c *Coordinator) Contexts() []models.Owner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Owner, 0, len(c.contexts))
	for _, st := range c.contexts {
		out = append(out, st.owner)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContextID < out[j].ContextID })
	return out
}

func eventIDs(events []models.TimelineEvent) []string {
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}
