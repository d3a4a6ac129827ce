package core

import (
	"sort"
	"strings"
)

// RecordSource supplies the records a query runs against.
// Snapshot must return a slice the caller may read without synchronization for
// the duration of the call; the engine never modifies it or its records.
type RecordSource interface {
	Snapshot() []*Record
}

// SliceSource adapts a fixed slice to RecordSource.
type SliceSource []*Record

// Snapshot returns the slice itself.
func (s SliceSource) Snapshot() []*Record { return s }

// Engine runs queries against a record source.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	catalog *Catalog
	source  RecordSource
}

// NewEngine creates an engine over source using catalog for column lookups.
func NewEngine(catalog *Catalog, source RecordSource) *Engine {
	return &Engine{catalog: catalog, source: source}
}

// Catalog returns the engine's column catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Records returns one page of records matching q.
// If q has an inverted date range, the result is empty and ErrInvalidDateRange
// is returned.
func (e *Engine) Records(q Query) (Result, error) {
	return e.run(q, true)
}

// AllRecords returns every record matching q, sorted, with pagination skipped.
// Used for export.
func (e *Engine) AllRecords(q Query) (Result, error) {
	return e.run(q, false)
}

func (e *Engine) run(q Query, applyPaging bool) (Result, error) {
	q = q.Normalize()

	if err := q.ValidateDateRange(); err != nil {
		return Result{
			Items:     []*Record{},
			Page:      1,
			PageSize:  q.PageSize,
			PageCount: 1,
			SortBy:    ColumnID,
			SortDir:   SortAsc,
		}, err
	}

	working := e.filter(e.source.Snapshot(), q)
	sortBy, sortDir := e.sortRecords(working, q)

	total := len(working)
	pages := pageCount(total, q.PageSize)
	page := min(q.Page, pages)

	items := working
	if applyPaging {
		start := min((page-1)*q.PageSize, total)
		end := min(page*q.PageSize, total)
		items = working[start:end]
	}

	return Result{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   q.PageSize,
		PageCount:  pages,
		SortBy:     sortBy,
		SortDir:    sortDir,
	}, nil
}

// filter applies the search and column-filter stages and returns a new slice.
// q must already be normalized.
func (e *Engine) filter(records []*Record, q Query) []*Record {
	predicates := append(searchPredicates(q), e.columnPredicates(q)...)

	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if matchesAll(r, predicates) {
			out = append(out, r)
		}
	}
	return out
}

type predicate func(r *Record) bool

func matchesAll(r *Record, predicates []predicate) bool {
	for _, p := range predicates {
		if !p(r) {
			return false
		}
	}
	return true
}

// searchPredicates builds the top-level search stage. Absent fields add nothing.
func searchPredicates(q Query) []predicate {
	var ps []predicate

	if q.ID != nil {
		id := *q.ID
		ps = append(ps, func(r *Record) bool { return r.ID == id })
	}
	if q.Keyword != "" {
		kw := strings.ToLower(q.Keyword)
		ps = append(ps, func(r *Record) bool { return containsFold(r.Name, kw) })
	}
	if q.Name != "" {
		name := strings.ToLower(q.Name)
		ps = append(ps, func(r *Record) bool { return containsFold(r.Name, name) })
	}
	if q.Field01 != "" {
		orderNo := strings.ToLower(q.Field01)
		ps = append(ps, func(r *Record) bool { return containsFold(r.Field(1), orderNo) })
	}
	if q.Category != "" {
		category := q.Category
		ps = append(ps, func(r *Record) bool { return strings.EqualFold(r.Category, category) })
	}
	if q.Status != "" {
		status := q.Status
		ps = append(ps, func(r *Record) bool { return strings.EqualFold(r.Status, status) })
	}
	if q.UpdatedFrom != nil {
		from := truncateDate(*q.UpdatedFrom)
		ps = append(ps, func(r *Record) bool { return !truncateDate(r.UpdatedAt).Before(from) })
	}
	if q.UpdatedTo != nil {
		to := truncateDate(*q.UpdatedTo)
		ps = append(ps, func(r *Record) bool { return !truncateDate(r.UpdatedAt).After(to) })
	}

	return ps
}

// columnPredicates builds the per-column substring stage.
// Filters on unknown columns are skipped.
func (e *Engine) columnPredicates(q Query) []predicate {
	var ps []predicate

	q.ColumnFilters.Each(func(column, value string) {
		col, ok := e.catalog.Resolve(column)
		if !ok {
			return
		}
		needle := strings.ToLower(value)
		ps = append(ps, func(r *Record) bool {
			cell := col.Value(r)
			if cell.IsNull() {
				return false
			}
			return containsFold(cell.String(), needle)
		})
	})

	return ps
}

// containsFold reports whether lowerNeedle occurs in s ignoring case.
// lowerNeedle must already be lowercase.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// sortRecords sorts records in place and returns the effective column and direction.
// Unknown or missing sort columns fall back to ID ascending.
func (e *Engine) sortRecords(records []*Record, q Query) (string, string) {
	col, ok := e.catalog.Resolve(q.SortBy)
	dir := q.SortDir
	if q.SortBy == "" || !ok {
		col, _ = e.catalog.Resolve(ColumnID)
		dir = SortAsc
	}

	// Extract once per record, not once per comparison.
	keyed := make([]sortItem, len(records))
	for i, r := range records {
		keyed[i] = sortItem{record: r, key: col.Value(r)}
	}

	cmp := comparerFor(col.Type)
	if dir == SortDesc {
		sort.SliceStable(keyed, func(i, j int) bool {
			return cmp(keyed[j].key, keyed[i].key) < 0
		})
	} else {
		sort.SliceStable(keyed, func(i, j int) bool {
			return cmp(keyed[i].key, keyed[j].key) < 0
		})
	}

	for i, item := range keyed {
		records[i] = item.record
	}

	return col.Name, dir
}

type sortItem struct {
	record *Record
	key    Value
}

// compareFunc orders two cells: negative if a sorts first.
type compareFunc func(a, b Value) int

// comparerFor returns the comparison strategy for a column type.
// Every strategy sorts null first and falls back to case-insensitive text
// when a cell is not of the declared type.
func comparerFor(t ColumnType) compareFunc {
	var typed compareFunc
	switch t {
	case ColumnDate:
		typed = compareDates
	case ColumnNumber:
		typed = compareNumbers
	default:
		typed = compareText
	}

	return func(a, b Value) int {
		switch {
		case a.IsNull() && b.IsNull():
			return 0
		case a.IsNull():
			return -1
		case b.IsNull():
			return 1
		case a.kind != t || b.kind != t:
			return compareText(a, b)
		}
		return typed(a, b)
	}
}

func compareDates(a, b Value) int {
	return a.date.Compare(b.date)
}

func compareNumbers(a, b Value) int {
	switch {
	case a.num < b.num:
		return -1
	case a.num > b.num:
		return 1
	}
	return 0
}

func compareText(a, b Value) int {
	return compareFold(a.String(), b.String())
}

// compareFold orders strings ignoring case by comparing their upper-case
// forms, so the punctuation between 'Z' and 'a' sorts after letters.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}
