package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// queryFlags are the search, filter and sort flags shared by query, suggest
// and export.
type queryFlags struct {
	id       string
	keyword  string
	name     string
	field01  string
	category string
	status   string
	from     string
	to       string
	sortBy   string
	sortDir  string
	columns  []string // Column=substring
}

func (f *queryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.id, "id", "", "exact record ID")
	fs.StringVarP(&f.keyword, "keyword", "k", "", "substring of Name")
	fs.StringVar(&f.name, "name", "", "substring of Name")
	fs.StringVar(&f.field01, "field01", "", "substring of the order number")
	fs.StringVar(&f.category, "category", "", "exact category, case-insensitive")
	fs.StringVar(&f.status, "status", "", "exact status, case-insensitive")
	fs.StringVar(&f.from, "from", "", "updated on or after (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "updated on or before (YYYY-MM-DD)")
	fs.StringVar(&f.sortBy, "sort-by", "", "column to sort by (default ID)")
	fs.StringVar(&f.sortDir, "sort-dir", "asc", "sort direction: asc or desc")
	fs.StringArrayVar(&f.columns, "col", nil, "column filter Column=substring (repeatable)")
}

// query builds the query. Unlike URL parameters, malformed flag values are
// reported rather than ignored.
func (f *queryFlags) query() (core.Query, error) {
	q := core.NewQuery()

	if s := strings.TrimSpace(f.id); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return q, fmt.Errorf("--id %q: not an integer", f.id)
		}
		q.ID = &id
	}

	q.Keyword = f.keyword
	q.Name = f.name
	q.Field01 = f.field01
	q.Category = f.category
	q.Status = f.status
	q.SortBy = f.sortBy
	q.SortDir = f.sortDir

	var err error
	if q.UpdatedFrom, err = parseDateFlag("from", f.from); err != nil {
		return q, err
	}
	if q.UpdatedTo, err = parseDateFlag("to", f.to); err != nil {
		return q, err
	}

	for _, c := range f.columns {
		column, value, ok := strings.Cut(c, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return q, fmt.Errorf("--col %q: want Column=substring", c)
		}
		q = q.WithColumnFilter(strings.TrimSpace(column), value)
	}

	return q, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := core.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s %q: want YYYY-MM-DD", name, value)
	}
	return &t, nil
}
