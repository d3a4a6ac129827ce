package core

import (
	"slices"
	"strings"
)

// Suggestion limits.
const (
	DefaultSuggestionLimit = 10
	MaxSuggestionLimit     = 50
)

// Scope controls which constraints are lifted when computing suggestions.
type Scope string

const (
	// ScopeColumn lifts only the column's own column filter.
	ScopeColumn Scope = "column"
	// ScopeQuery also lifts the top-level search field the column maps to.
	ScopeQuery Scope = "query"
)

// ParseScope maps "query" (any case) to ScopeQuery and everything else to ScopeColumn.
func ParseScope(s string) Scope {
	if strings.EqualFold(strings.TrimSpace(s), string(ScopeQuery)) {
		return ScopeQuery
	}
	return ScopeColumn
}

// SuggestionLimit clamps a requested limit: non-positive becomes
// DefaultSuggestionLimit, anything above MaxSuggestionLimit is capped.
func SuggestionLimit(limit int) int {
	if limit <= 0 {
		return DefaultSuggestionLimit
	}
	return min(limit, MaxSuggestionLimit)
}

// Suggest returns the distinct rendered values of column across records that
// match every constraint in base except the column's own filter.
//
// Values containing term (trimmed, case-insensitive) are kept when term is set.
// The result is deduplicated and ordered case-insensitively, keeping the first
// spelling seen, and capped by SuggestionLimit(limit). Unknown columns yield an
// empty slice.
func (e *Engine) Suggest(column string, base Query, term string, limit int, scope Scope) []string {
	col, ok := e.catalog.Resolve(column)
	if !ok {
		return []string{}
	}

	q := base.Normalize().WithoutColumnFilter(col.Name)
	if scope == ScopeQuery {
		q = q.withoutSearchField(col.Name)
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	seen := make(map[string]struct{})
	values := make([]string, 0)

	for _, r := range e.filter(e.source.Snapshot(), q) {
		v := col.Render(r)
		if strings.TrimSpace(v) == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if needle != "" && !strings.Contains(key, needle) {
			continue
		}
		values = append(values, v)
	}

	slices.SortStableFunc(values, compareFold)

	if n := SuggestionLimit(limit); len(values) > n {
		values = values[:n]
	}
	return values
}
