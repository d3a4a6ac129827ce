// Package integration merges several trade-order records into one composite
// record and can undo the merge.
//
// An integration removes its source records from the live set and inserts a
// single composite with IsIntegrationResult set. The sources are remembered
// under a batch ID so Undo can put them back exactly as they were.
package integration

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/store"
)

var (
	ErrTooFewRecords     = errors.New("at least two records are required")
	ErrRecordNotFound    = errors.New("record not found")
	ErrAlreadyIntegrated = errors.New("record is already integrated")
	ErrNotIntegrated     = errors.New("record is not an integration result")
)

// Overrides replace values that would otherwise come from the source records.
// Zero fields are ignored.
type Overrides struct {
	RequestNo      *int
	ContractDate   *time.Time
	PersonInCharge string
}

// Result reports the outcome of Integrate or Undo.
type Result struct {
	Success   bool
	Message   string
	RecordID  int64   // composite record
	BatchID   string  // uuid of the integration batch
	SourceIDs []int64 // records merged into, or restored from, the composite
}

// Group describes one live integration.
type Group struct {
	BatchID   string
	RecordID  int64
	SourceIDs []int64
	CreatedAt time.Time
}

type batch struct {
	id        string
	recordID  int64
	sources   []*core.Record
	createdAt time.Time
}

// Service performs integrations against a store.
type Service struct {
	store *store.Memory
	now   func() time.Time

	mu      sync.Mutex
	batches map[int64]*batch // composite record ID -> batch
}

// NewService creates a service over s.
func NewService(s *store.Memory) *Service {
	return &Service{
		store:   s,
		now:     time.Now,
		batches: make(map[int64]*batch),
	}
}

// Integrate merges the records in ids into a new composite record.
//
// At least two distinct IDs are required. Every ID must exist and must not
// already be an integration result. The composite takes:
//
//   - ID: one above the largest ID in the store
//   - Name: overrides.PersonInCharge, or the first source's Name
//   - Category, Status, Field02..Field64: the first source's values
//   - UpdatedAt: overrides.ContractDate, or the latest source date
//   - Amount: the sum of the source amounts
//   - Field01: REQ-<n> from overrides.RequestNo, or INT-<yyyy>-<id>
//
// The first source is the one whose ID appears first in ids.
func (s *Service) Integrate(ids []int64, overrides Overrides) (Result, error) {
	ids = distinct(ids)
	result := Result{SourceIDs: ids}

	if len(ids) < 2 {
		result.Message = ErrTooFewRecords.Error()
		return result, ErrTooFewRecords
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var composite *core.Record
	var sources []*core.Record

	err := s.store.Apply(func(tx *store.Tx) error {
		sources = make([]*core.Record, 0, len(ids))
		for _, id := range ids {
			r, ok := tx.Get(id)
			if !ok {
				return fmt.Errorf("integrate %d: %w", id, ErrRecordNotFound)
			}
			if r.IsIntegrationResult {
				return fmt.Errorf("integrate %d: %w", id, ErrAlreadyIntegrated)
			}
			sources = append(sources, r)
		}

		composite = merge(tx.MaxID()+1, sources, overrides)
		for _, id := range ids {
			tx.Delete(id)
		}
		return tx.Insert(composite)
	})
	if err != nil {
		result.Message = err.Error()
		return result, err
	}

	b := &batch{
		id:        uuid.NewString(),
		recordID:  composite.ID,
		sources:   sources,
		createdAt: s.now(),
	}
	s.batches[b.recordID] = b

	result.Success = true
	result.RecordID = b.recordID
	result.BatchID = b.id
	result.Message = fmt.Sprintf("Integrated %d records into record %d", len(ids), b.recordID)

	return result, nil
}

// Undo removes the composite record id and restores its sources.
func (s *Service) Undo(id int64) (Result, error) {
	result := Result{RecordID: id}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[id]
	if !ok {
		if _, exists := s.store.Get(id); !exists {
			err := fmt.Errorf("undo %d: %w", id, ErrRecordNotFound)
			result.Message = err.Error()
			return result, err
		}
		err := fmt.Errorf("undo %d: %w", id, ErrNotIntegrated)
		result.Message = err.Error()
		return result, err
	}

	result.BatchID = b.id
	result.SourceIDs = sourceIDs(b.sources)

	err := s.store.Apply(func(tx *store.Tx) error {
		if _, ok := tx.Delete(id); !ok {
			return fmt.Errorf("undo %d: %w", id, ErrRecordNotFound)
		}
		for _, r := range b.sources {
			if err := tx.Insert(r); err != nil {
				return fmt.Errorf("undo %d: restore: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		result.Message = err.Error()
		return result, err
	}

	delete(s.batches, id)

	result.Success = true
	result.Message = fmt.Sprintf("Restored %d records from record %d", len(b.sources), id)

	return result, nil
}

// Groups returns the live integrations ordered by composite record ID.
func (s *Service) Groups() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]Group, 0, len(s.batches))
	for _, b := range s.batches {
		groups = append(groups, Group{
			BatchID:   b.id,
			RecordID:  b.recordID,
			SourceIDs: sourceIDs(b.sources),
			CreatedAt: b.createdAt,
		})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		switch {
		case a.RecordID < b.RecordID:
			return -1
		case a.RecordID > b.RecordID:
			return 1
		}
		return 0
	})
	return groups
}

func merge(id int64, sources []*core.Record, o Overrides) *core.Record {
	first := sources[0]
	r := first.Clone()
	r.ID = id
	r.IsIntegrationResult = true

	r.Amount = 0
	r.UpdatedAt = time.Time{}
	for _, src := range sources {
		r.Amount += src.Amount
		if src.UpdatedAt.After(r.UpdatedAt) {
			r.UpdatedAt = src.UpdatedAt
		}
	}

	if name := strings.TrimSpace(o.PersonInCharge); name != "" {
		r.Name = name
	}
	if o.ContractDate != nil && !o.ContractDate.IsZero() {
		y, m, d := o.ContractDate.Date()
		r.UpdatedAt = core.Date(y, m, d)
	}

	if o.RequestNo != nil {
		r.Fields[0] = fmt.Sprintf("REQ-%d", *o.RequestNo)
	} else {
		r.Fields[0] = fmt.Sprintf("INT-%d-%04d", r.UpdatedAt.Year(), id)
	}

	return r
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sourceIDs(records []*core.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
