package core

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// DefaultPageSize is used when the requested page size is not allowed.
const DefaultPageSize = 20

// PageSizes lists the allowed page sizes.
var PageSizes = []int{20, 50, 100}

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ErrInvalidDateRange is returned when UpdatedFrom is after UpdatedTo.
var ErrInvalidDateRange = errors.New("Updated From must be earlier than Updated To.")

// Query holds every search, filter, sort and pagination parameter for one call.
// Optional scalars are pointers to distinguish "not set" from zero values.
// A Query is a value: methods return modified copies.
type Query struct {
	ID          *int64     // Exact match on record ID
	Keyword     string     // Substring of Name
	Name        string     // Substring of Name
	Field01     string     // Substring of the order number
	Category    string     // Exact match, case-insensitive
	Status      string     // Exact match, case-insensitive
	UpdatedFrom *time.Time // Inclusive lower bound on UpdatedAt
	UpdatedTo   *time.Time // Inclusive upper bound on UpdatedAt

	Page     int
	PageSize int
	SortBy   string
	SortDir  string

	ColumnFilters ColumnFilters
}

// NewQuery returns a query for the first page with default settings.
func NewQuery() Query {
	return Query{Page: 1, PageSize: DefaultPageSize, SortDir: SortAsc}
}

// Normalize returns a sanitized copy of q.
//
//   - Page below 1 becomes 1
//   - PageSize outside PageSizes becomes DefaultPageSize
//   - SortDir is "desc" only if it says so (any case), otherwise "asc"
//   - string filters are trimmed; blank column filters are dropped
func (q Query) Normalize() Query {
	n := q

	if n.Page < 1 {
		n.Page = 1
	}
	if !slices.Contains(PageSizes, n.PageSize) {
		n.PageSize = DefaultPageSize
	}
	if strings.EqualFold(strings.TrimSpace(n.SortDir), SortDesc) {
		n.SortDir = SortDesc
	} else {
		n.SortDir = SortAsc
	}

	n.SortBy = strings.TrimSpace(n.SortBy)
	n.Keyword = strings.TrimSpace(n.Keyword)
	n.Name = strings.TrimSpace(n.Name)
	n.Field01 = strings.TrimSpace(n.Field01)
	n.Category = strings.TrimSpace(n.Category)
	n.Status = strings.TrimSpace(n.Status)
	n.ColumnFilters = q.ColumnFilters.sanitized()

	return n
}

// ValidateDateRange returns ErrInvalidDateRange if both bounds are set and inverted.
func (q Query) ValidateDateRange() error {
	if q.UpdatedFrom != nil && q.UpdatedTo != nil && q.UpdatedFrom.After(*q.UpdatedTo) {
		return ErrInvalidDateRange
	}
	return nil
}

// WithColumnFilter returns a copy of q filtering column by value.
func (q Query) WithColumnFilter(column, value string) Query {
	q.ColumnFilters = q.ColumnFilters.With(column, value)
	return q
}

// WithoutColumnFilter returns a copy of q with column's filter removed.
func (q Query) WithoutColumnFilter(column string) Query {
	q.ColumnFilters = q.ColumnFilters.Without(column)
	return q
}

// WithPage returns a copy of q asking for page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// WithSort returns a copy of q sorted by column in dir.
func (q Query) WithSort(column, dir string) Query {
	q.SortBy = column
	q.SortDir = dir
	return q
}

// withoutSearchField clears the top-level search parameter a column maps to.
// Columns without a top-level parameter are returned unchanged.
func (q Query) withoutSearchField(column string) Query {
	switch {
	case strings.EqualFold(column, ColumnID):
		q.ID = nil
	case strings.EqualFold(column, ColumnName):
		q.Keyword = ""
		q.Name = ""
	case strings.EqualFold(column, ColumnCategory):
		q.Category = ""
	case strings.EqualFold(column, ColumnStatus):
		q.Status = ""
	case strings.EqualFold(column, ColumnField01):
		q.Field01 = ""
	}
	return q
}

// ColumnFilters maps column names to substrings. Keys compare case-insensitively.
// The zero value is an empty set. With and Without return new sets and never
// modify the receiver, so a set can be shared between queries.
type ColumnFilters struct {
	entries map[string]columnFilter // lowercase column -> entry
}

type columnFilter struct {
	column string
	value  string
}

// NewColumnFilters builds a set from a plain map.
func NewColumnFilters(m map[string]string) ColumnFilters {
	f := ColumnFilters{entries: make(map[string]columnFilter, len(m))}
	for col, val := range m {
		f.entries[strings.ToLower(col)] = columnFilter{column: col, value: val}
	}
	return f
}

// With returns a copy with column set to value, replacing any existing entry.
func (f ColumnFilters) With(column, value string) ColumnFilters {
	out := f.clone(1)
	out.entries[strings.ToLower(column)] = columnFilter{column: column, value: value}
	return out
}

// Without returns a copy with column removed.
func (f ColumnFilters) Without(column string) ColumnFilters {
	key := strings.ToLower(column)
	if _, ok := f.entries[key]; !ok {
		return f
	}
	out := f.clone(0)
	delete(out.entries, key)
	return out
}

// Get returns the filter value for column.
func (f ColumnFilters) Get(column string) (string, bool) {
	e, ok := f.entries[strings.ToLower(column)]
	return e.value, ok
}

// Value returns the filter value for column or "".
func (f ColumnFilters) Value(column string) string {
	v, _ := f.Get(column)
	return v
}

// Len returns the number of filters.
func (f ColumnFilters) Len() int {
	return len(f.entries)
}

// Each calls fn for every filter in column-name order.
func (f ColumnFilters) Each(fn func(column, value string)) {
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		e := f.entries[k]
		fn(e.column, e.value)
	}
}

// Map returns the filters as a plain map keyed by column name as given.
func (f ColumnFilters) Map() map[string]string {
	m := make(map[string]string, len(f.entries))
	for _, e := range f.entries {
		m[e.column] = e.value
	}
	return m
}

func (f ColumnFilters) clone(extra int) ColumnFilters {
	out := ColumnFilters{entries: make(map[string]columnFilter, len(f.entries)+extra)}
	for k, e := range f.entries {
		out.entries[k] = e
	}
	return out
}

// sanitized drops blank values and trims the rest.
func (f ColumnFilters) sanitized() ColumnFilters {
	out := ColumnFilters{entries: make(map[string]columnFilter, len(f.entries))}
	for k, e := range f.entries {
		v := strings.TrimSpace(e.value)
		if v == "" {
			continue
		}
		out.entries[k] = columnFilter{column: e.column, value: v}
	}
	return out
}
