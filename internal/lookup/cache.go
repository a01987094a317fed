// Package lookup caches the small reference tables (divisions, categories, states)
// that other records link to by id.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/festy23/pitmstr/internal/datastore"
)

// Kind names a reference table.
type Kind string

// Reference kinds.
const (
	KindDivision Kind = "division"
	KindCategory Kind = "category"
	KindState    Kind = "state"
)

// ErrUnknownKind is returned for a kind that is not a reference table.
var ErrUnknownKind = errors.New("unknown lookup kind")

type source struct {
	table     string
	nameField string
	abbrField string
}

var sources = map[Kind]source{
	KindDivision: {table: datastore.TableDivisions, nameField: "Division Name"},
	KindCategory: {table: datastore.TableCategories, nameField: "Category Name"},
	KindState:    {table: datastore.TableStates, nameField: "State Name", abbrField: "Abbreviation"},
}

// Entry is one row of a reference table.
type Entry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Label is the display form: the abbreviation when present, else the name.
func (e Entry) Label() string {
	if e.Abbreviation != "" {
		return e.Abbreviation
	}
	return e.Name
}

type snapshot struct {
	byID  map[string]Entry
	order []Entry
}

// LoadRecorder receives the outcome of every reference table load.
type LoadRecorder interface {
	RecordLookupLoad(kind string, err error)
}

// Cache holds reference tables for the process lifetime.
// A table is fetched on first use and published only once it is complete,
// so a failed fetch leaves nothing behind and the next call retries.
type Cache struct {
	store    datastore.Store
	recorder LoadRecorder
	logger   *zap.SugaredLogger

	group     singleflight.Group
	snapshots map[Kind]*atomic.Pointer[snapshot]
}

// New creates an empty cache over store. recorder may be nil.
func New(store datastore.Store, recorder LoadRecorder, logger *zap.SugaredLogger) *Cache {
	snapshots := make(map[Kind]*atomic.Pointer[snapshot], len(sources))
	for kind := range sources {
		snapshots[kind] = &atomic.Pointer[snapshot]{}
	}
	return &Cache{
		store:     store,
		recorder:  recorder,
		logger:    logger,
		snapshots: snapshots,
	}
}

// Resolve returns the label of id. ok is false when the id is empty or unknown.
func (c *Cache) Resolve(ctx context.Context, kind Kind, id string) (label string, ok bool, err error) {
	entry, ok, err := c.Entry(ctx, kind, id)
	if err != nil || !ok {
		return "", false, err
	}
	return entry.Label(), true, nil
}

// Entry returns the full reference row for id.
func (c *Cache) Entry(ctx context.Context, kind Kind, id string) (Entry, bool, error) {
	if id == "" {
		if _, ok := sources[kind]; !ok {
			return Entry{}, false, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
		}
		return Entry{}, false, nil
	}
	snap, err := c.load(ctx, kind)
	if err != nil {
		return Entry{}, false, err
	}
	entry, ok := snap.byID[id]
	return entry, ok, nil
}

// ResolveAll resolves ids in order, dropping the ones that are unknown.
func (c *Cache) ResolveAll(ctx context.Context, kind Kind, ids []string) ([]string, error) {
	labels := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}
	snap, err := c.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if entry, ok := snap.byID[id]; ok && entry.Label() != "" {
			labels = append(labels, entry.Label())
		}
	}
	return labels, nil
}

// Entries returns all rows of a reference table in source order.
func (c *Cache) Entries(ctx context.Context, kind Kind) ([]Entry, error) {
	snap, err := c.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(snap.order))
	copy(out, snap.order)
	return out, nil
}

// Labels returns the labels of a reference table in source order.
func (c *Cache) Labels(ctx context.Context, kind Kind) ([]string, error) {
	entries, err := c.Entries(ctx, kind)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label())
	}
	return labels, nil
}

// Warm loads every reference table.
func (c *Cache) Warm(ctx context.Context) error {
	for _, kind := range []Kind{KindDivision, KindCategory, KindState} {
		if _, err := c.load(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops all cached tables.
func (c *Cache) Reset() {
	for _, p := range c.snapshots {
		p.Store(nil)
	}
	c.logger.Infow("lookup cache reset")
}

func (c *Cache) load(ctx context.Context, kind Kind) (*snapshot, error) {
	src, ok := sources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	ptr := c.snapshots[kind]
	if snap := ptr.Load(); snap != nil {
		return snap, nil
	}

	v, err, _ := c.group.Do(string(kind), func() (any, error) {
		if snap := ptr.Load(); snap != nil {
			return snap, nil
		}
		snap, err := c.fetch(ctx, src)
		if c.recorder != nil {
			c.recorder.RecordLookupLoad(string(kind), err)
		}
		if err != nil {
			c.logger.Errorw("lookup load failed", "kind", kind, "error", err)
			return nil, fmt.Errorf("load %s lookup: %w", kind, err)
		}
		ptr.Store(snap)
		c.logger.Debugw("lookup loaded", "kind", kind, "count", len(snap.order))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (c *Cache) fetch(ctx context.Context, src source) (*snapshot, error) {
	records, err := c.store.List(ctx, src.table, datastore.ListOptions{})
	if err != nil {
		return nil, err
	}
	snap := &snapshot{
		byID:  make(map[string]Entry, len(records)),
		order: make([]Entry, 0, len(records)),
	}
	for _, rec := range records {
		entry := Entry{ID: rec.ID, Name: rec.String(src.nameField)}
		if src.abbrField != "" {
			entry.Abbreviation = rec.String(src.abbrField)
		}
		snap.byID[rec.ID] = entry
		snap.order = append(snap.order, entry)
	}
	return snap, nil
}
