package core

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical text form of calendar dates.
const DateLayout = "2006-01-02"

// SupplementaryFieldCount is the number of FieldNN text columns on a record.
const SupplementaryFieldCount = 64

// ColumnType is the semantic type of a column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnNumber
	ColumnDate
)

// String returns the lowercase type name used in JSON.
func (t ColumnType) String() string {
	switch t {
	case ColumnNumber:
		return "number"
	case ColumnDate:
		return "date"
	default:
		return "text"
	}
}

// Record is one row of the dataset.
// Records are owned by the store and treated as read-only everywhere else.
type Record struct {
	ID                  int64
	Name                string
	Category            string
	Status              string
	UpdatedAt           time.Time // calendar date, UTC midnight
	Amount              int64
	IsIntegrationResult bool

	// Fields holds Field01..Field64. Field01 is the order number.
	Fields [SupplementaryFieldCount]string
}

// Field returns the 1-based supplementary field n, or "" when out of range.
func (r *Record) Field(n int) string {
	if n < 1 || n > SupplementaryFieldCount {
		return ""
	}
	return r.Fields[n-1]
}

// Integration status labels shown per row.
const (
	IntegrationLabelYes = "あり"
	IntegrationLabelNo  = "なし"
)

// IntegrationStatus reports whether the record is a composite of other records.
func (r *Record) IntegrationStatus() string {
	if r.IsIntegrationResult {
		return IntegrationLabelYes
	}
	return IntegrationLabelNo
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Value is a single cell extracted by a column accessor.
// The zero Value is a null text cell.
type Value struct {
	kind  ColumnType
	valid bool
	text  string
	num   int64
	date  time.Time
}

// TextValue wraps s. An empty string is a null cell.
func TextValue(s string) Value {
	return Value{kind: ColumnText, valid: s != "", text: s}
}

// NumberValue wraps n.
func NumberValue(n int64) Value {
	return Value{kind: ColumnNumber, valid: true, num: n}
}

// DateValue wraps the calendar date of t. A zero time is a null cell.
func DateValue(t time.Time) Value {
	if t.IsZero() {
		return Value{kind: ColumnDate}
	}
	return Value{kind: ColumnDate, valid: true, date: truncateDate(t)}
}

// NullValue returns a null cell of the given type.
func NullValue(kind ColumnType) Value {
	return Value{kind: kind}
}

// Kind returns the value's type.
func (v Value) Kind() ColumnType { return v.kind }

// IsNull reports whether the cell is unpopulated.
func (v Value) IsNull() bool { return !v.valid }

// String renders the cell as text: dates as YYYY-MM-DD, numbers in decimal,
// null as the empty string. Filtering, suggestions and export all use this form.
func (v Value) String() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case ColumnNumber:
		return strconv.FormatInt(v.num, 10)
	case ColumnDate:
		return v.date.Format(DateLayout)
	default:
		return v.text
	}
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Result is the outcome of one engine call.
type Result struct {
	Items      []*Record
	TotalCount int

	// Page is the effective page after clamping, not necessarily the one requested.
	Page      int
	PageSize  int
	PageCount int
	SortBy    string
	SortDir   string
}

// StartIndex is the 1-based position of the first item, 0 when empty.
func (r Result) StartIndex() int {
	if r.TotalCount == 0 {
		return 0
	}
	return (r.Page-1)*r.PageSize + 1
}

// EndIndex is the 1-based position of the last item on the page, 0 when empty.
func (r Result) EndIndex() int {
	if r.TotalCount == 0 {
		return 0
	}
	return min(r.Page*r.PageSize, r.TotalCount)
}

// Summary returns the human-readable range line shown under the table.
func (r Result) Summary() string {
	if r.TotalCount == 0 {
		return "No records found"
	}
	return "Showing " + strconv.Itoa(r.StartIndex()) + " - " + strconv.Itoa(r.EndIndex()) +
		" of " + strconv.Itoa(r.TotalCount) + " records"
}

// pageCount returns max(1, ceil(total/pageSize)).
func pageCount(total, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
