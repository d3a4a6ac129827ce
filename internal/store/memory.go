// Package store holds the live record set behind the query engine.
//
// Memory publishes immutable snapshots: readers get the slice that was current
// when they asked and keep it for the whole call, while writers build a new
// slice and swap it in atomically. A published slice and the records in it are
// never modified.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// ErrDuplicateID is returned when inserting a record whose ID is already present.
var ErrDuplicateID = errors.New("duplicate record id")

// Memory is an in-memory, copy-on-write record store.
// It implements core.RecordSource and is safe for concurrent use.
type Memory struct {
	writeMu sync.Mutex // serializes writers; readers never lock
	current atomic.Pointer[snapshot]
}

type snapshot struct {
	records []*core.Record // ordered by ID
	byID    map[int64]*core.Record
	maxID   int64
}

// NewMemory creates a store holding records.
// Duplicate IDs keep the last occurrence.
func NewMemory(records []*core.Record) *Memory {
	m := &Memory{}
	m.current.Store(newSnapshot(records))
	return m
}

func newSnapshot(records []*core.Record) *snapshot {
	byID := make(map[int64]*core.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	return buildSnapshot(byID)
}

func buildSnapshot(byID map[int64]*core.Record) *snapshot {
	s := &snapshot{
		records: make([]*core.Record, 0, len(byID)),
		byID:    byID,
	}
	for id, r := range byID {
		s.records = append(s.records, r)
		s.maxID = max(s.maxID, id)
	}
	slices.SortFunc(s.records, func(a, b *core.Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return s
}

// Snapshot returns the current record set ordered by ID.
// The caller must not modify the slice or its records.
func (m *Memory) Snapshot() []*core.Record {
	return m.current.Load().records
}

// Get returns the record with id.
func (m *Memory) Get(id int64) (*core.Record, bool) {
	r, ok := m.current.Load().byID[id]
	return r, ok
}

// Len returns the number of records.
func (m *Memory) Len() int {
	return len(m.current.Load().records)
}

// MaxID returns the largest record ID, or 0 when empty.
func (m *Memory) MaxID() int64 {
	return m.current.Load().maxID
}

// Replace swaps the whole record set.
func (m *Memory) Replace(records []*core.Record) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.current.Store(newSnapshot(records))
}

// Apply runs fn against a private copy of the record set and publishes the
// result if fn returns nil. If fn fails, nothing changes and its error is
// returned. Writers are serialized; readers keep seeing the old snapshot until
// the new one is published.
func (m *Memory) Apply(fn func(tx *Tx) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	cur := m.current.Load()
	tx := &Tx{
		byID:  make(map[int64]*core.Record, len(cur.byID)),
		maxID: cur.maxID,
	}
	for id, r := range cur.byID {
		tx.byID[id] = r
	}

	if err := fn(tx); err != nil {
		return err
	}
	if tx.dirty {
		m.current.Store(buildSnapshot(tx.byID))
	}
	return nil
}

// Tx is a pending change set passed to Apply. It is only valid inside the
// callback.
type Tx struct {
	byID  map[int64]*core.Record
	maxID int64
	dirty bool
}

// Get returns the record with id as seen by this transaction.
func (tx *Tx) Get(id int64) (*core.Record, bool) {
	r, ok := tx.byID[id]
	return r, ok
}

// MaxID returns the largest ID ever seen by this transaction, including
// records deleted in it, so a new ID never reuses one freed in the same call.
func (tx *Tx) MaxID() int64 {
	return tx.maxID
}

// Insert adds a copy of r.
func (tx *Tx) Insert(r *core.Record) error {
	if _, ok := tx.byID[r.ID]; ok {
		return fmt.Errorf("insert %d: %w", r.ID, ErrDuplicateID)
	}
	tx.byID[r.ID] = r.Clone()
	tx.maxID = max(tx.maxID, r.ID)
	tx.dirty = true
	return nil
}

// Delete removes the record with id and returns it.
func (tx *Tx) Delete(id int64) (*core.Record, bool) {
	r, ok := tx.byID[id]
	if !ok {
		return nil, false
	}
	delete(tx.byID, id)
	tx.dirty = true
	return r, true
}
