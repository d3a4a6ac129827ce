package web

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// columnFilterPrefix marks a column filter parameter: col_Status=open.
// The prefix matches case-insensitively.
const columnFilterPrefix = "col_"

// parseQuery builds a query from URL parameters.
// Values that do not parse are treated as absent.
func parseQuery(values url.Values) core.Query {
	q := core.NewQuery()

	if id, err := strconv.ParseInt(strings.TrimSpace(values.Get("id")), 10, 64); err == nil {
		q.ID = &id
	}
	q.Keyword = values.Get("keyword")
	q.Name = values.Get("name")
	q.Field01 = values.Get("field01")
	q.Category = values.Get("category")
	q.Status = values.Get("status")
	q.UpdatedFrom = parseDateParam(values, "updatedFrom")
	q.UpdatedTo = parseDateParam(values, "updatedTo")

	q.Page = parseIntParam(values, "page", 1)
	q.PageSize = parseIntParam(values, "pageSize", core.DefaultPageSize)
	q.SortBy = values.Get("sortBy")
	q.SortDir = values.Get("sortDir")

	// Keys are visited in sorted order so duplicates that differ only in
	// case resolve the same way on every request.
	keys := make([]string, 0, len(values))
	for key := range values {
		if len(key) > len(columnFilterPrefix) && strings.EqualFold(key[:len(columnFilterPrefix)], columnFilterPrefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		q = q.WithColumnFilter(key[len(columnFilterPrefix):], values.Get(key))
	}

	return q
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(values url.Values, name string, defaultVal int) int {
	val := strings.TrimSpace(values.Get(name))
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// parseDateParam parses a YYYY-MM-DD parameter, nil when absent or malformed.
func parseDateParam(values url.Values, name string) *time.Time {
	val := strings.TrimSpace(values.Get(name))
	if val == "" {
		return nil
	}
	t, err := core.ParseDate(val)
	if err != nil {
		return nil
	}
	return &t
}

// withParam returns r's query string with name set to value.
func withParam(r *http.Request, name, value string) string {
	values := r.URL.Query()
	values.Set(name, value)
	return values.Encode()
}
