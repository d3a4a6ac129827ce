package core

import (
	"fmt"
	"strings"
	"sync"
)

// Accessor extracts a cell from a record. Accessors must be total: they never
// panic on a non-nil record and return a null Value for unpopulated fields.
type Accessor func(r *Record) Value

// ColumnDescriptor describes a single column of the dataset.
type ColumnDescriptor struct {
	Name     string     // Unique key, matched case-insensitively: "UpdatedAt"
	Label    string     // Display name: "Updated At"
	Type     ColumnType // Drives comparison during sort
	Accessor Accessor
}

// Value extracts the column's cell from r.
func (c ColumnDescriptor) Value(r *Record) Value {
	return c.Accessor(r)
}

// Render extracts the column's cell from r as text.
func (c ColumnDescriptor) Render(r *Record) string {
	return c.Accessor(r).String()
}

// Catalog is an ordered, read-only set of columns.
// Registration order is the UI column order and the export header order.
type Catalog struct {
	columns []ColumnDescriptor
	lookup  map[string]int // lowercase name -> index
}

// NewCatalog builds a catalog from the given columns.
// Panics if two columns share a name (case-insensitive) or an accessor is nil.
func NewCatalog(columns ...ColumnDescriptor) *Catalog {
	c := &Catalog{
		columns: make([]ColumnDescriptor, 0, len(columns)),
		lookup:  make(map[string]int, len(columns)),
	}

	for _, col := range columns {
		key := strings.ToLower(col.Name)
		if key == "" {
			panic("column name must not be empty")
		}
		if col.Accessor == nil {
			panic(fmt.Sprintf("column %s has no accessor", col.Name))
		}
		if _, exists := c.lookup[key]; exists {
			panic(fmt.Sprintf("column already registered: %s", col.Name))
		}
		if col.Label == "" {
			col.Label = col.Name
		}

		c.lookup[key] = len(c.columns)
		c.columns = append(c.columns, col)
	}

	return c
}

// Resolve returns a column by name, ignoring case.
// Returns false if not found.
func (c *Catalog) Resolve(name string) (ColumnDescriptor, bool) {
	idx, ok := c.lookup[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ColumnDescriptor{}, false
	}
	return c.columns[idx], true
}

// All returns every column in registration order.
// The returned slice is a copy.
func (c *Catalog) All() []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(c.columns))
	copy(out, c.columns)
	return out
}

// Names returns the raw column names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name
	}
	return names
}

// Len returns the number of columns.
func (c *Catalog) Len() int {
	return len(c.columns)
}

// Column names with behavior attached beyond filtering and sorting.
const (
	ColumnID        = "ID"
	ColumnName      = "Name"
	ColumnCategory  = "Category"
	ColumnStatus    = "Status"
	ColumnUpdatedAt = "UpdatedAt"
	ColumnAmount    = "Amount"
	ColumnField01   = "Field01"
)

var defaultCatalog = sync.OnceValue(buildDefaultCatalog)

// DefaultCatalog returns the record catalog: the six core columns followed by
// Field01..Field64. Built on first use and shared.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

func buildDefaultCatalog() *Catalog {
	columns := []ColumnDescriptor{
		{Name: ColumnID, Label: "ID", Type: ColumnNumber, Accessor: func(r *Record) Value { return NumberValue(r.ID) }},
		{Name: ColumnName, Label: "Name", Type: ColumnText, Accessor: func(r *Record) Value { return TextValue(r.Name) }},
		{Name: ColumnCategory, Label: "Category", Type: ColumnText, Accessor: func(r *Record) Value { return TextValue(r.Category) }},
		{Name: ColumnStatus, Label: "Status", Type: ColumnText, Accessor: func(r *Record) Value { return TextValue(r.Status) }},
		{Name: ColumnUpdatedAt, Label: "Updated At", Type: ColumnDate, Accessor: func(r *Record) Value { return DateValue(r.UpdatedAt) }},
		{Name: ColumnAmount, Label: "Amount", Type: ColumnNumber, Accessor: func(r *Record) Value { return NumberValue(r.Amount) }},
	}

	for i := 1; i <= SupplementaryFieldCount; i++ {
		n := i
		columns = append(columns, ColumnDescriptor{
			Name:     fmt.Sprintf("Field%02d", n),
			Label:    fmt.Sprintf("Field %02d", n),
			Type:     ColumnText,
			Accessor: func(r *Record) Value { return TextValue(r.Field(n)) },
		})
	}

	return NewCatalog(columns...)
}
