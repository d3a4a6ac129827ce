package core

import (
	"fmt"
	"slices"
	"testing"
)

func suggestRecords() []*Record {
	return []*Record{
		testRecord(1, "Sato Taro", "Cotton", "Active", Date(2024, 1, 10), 100),
		testRecord(2, "Suzuki Hanako", "Silk", "Inactive", Date(2024, 1, 12), 200),
		testRecord(3, "Tanaka Ichiro", "Cotton", "Pending", Date(2024, 2, 1), 300),
		testRecord(4, "sato taro", "Wool", "Active", Date(2024, 2, 3), 400),
		testRecord(5, "Ito Ken", "Cotton", "", Date(2024, 2, 9), 500),
	}
}

func TestSuggest_SelfExclusion(t *testing.T) {
	e := testEngine(suggestRecords()...)

	base := NewQuery().WithColumnFilter("Status", "Active")
	got := e.Suggest("Status", base, "", 0, ScopeColumn)

	want := []string{"Active", "Inactive", "Pending"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggest(Status) = %v, want %v", got, want)
	}
}

func TestSuggest_OtherFiltersStillApply(t *testing.T) {
	e := testEngine(suggestRecords()...)

	base := NewQuery().
		WithColumnFilter("Status", "Active").
		WithColumnFilter("Category", "cotton")
	got := e.Suggest("Status", base, "", 0, ScopeColumn)

	want := []string{"Active", "Pending"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggest(Status) = %v, want %v", got, want)
	}
}

func TestSuggest_DedupAndOrder(t *testing.T) {
	e := testEngine(suggestRecords()...)

	got := e.Suggest("name", NewQuery(), "", 10, ScopeColumn)
	want := []string{"Ito Ken", "Sato Taro", "Suzuki Hanako", "Tanaka Ichiro"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggest(name) = %v, want %v", got, want)
	}
}

func TestSuggest_OrderFoldsToUpper(t *testing.T) {
	e := testEngine(
		testRecord(1, "_a", "A", "Active", Date(2024, 1, 1), 1),
		testRecord(2, "aa", "A", "Active", Date(2024, 1, 1), 1),
	)

	got := e.Suggest("Name", NewQuery(), "", 0, ScopeColumn)
	if want := []string{"aa", "_a"}; !slices.Equal(got, want) {
		t.Errorf("Suggest(Name) = %v, want %v", got, want)
	}
}

func TestSuggest_Term(t *testing.T) {
	e := testEngine(suggestRecords()...)

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"Cotton", "Silk", "Wool"}},
		{"  O ", []string{"Cotton", "Wool"}},
		{"SILK", []string{"Silk"}},
		{"linen", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := e.Suggest("Category", NewQuery(), tt.term, 0, ScopeColumn)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Suggest(Category, %q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestSuggest_Limit(t *testing.T) {
	records := make([]*Record, 80)
	for i := range records {
		records[i] = testRecord(int64(i+1), fmt.Sprintf("name-%02d", i), "A", "s", Date(2024, 1, 1), 0)
	}
	e := testEngine(records...)

	tests := []struct {
		limit int
		want  int
	}{
		{0, 10},
		{-5, 10},
		{3, 3},
		{50, 50},
		{100, 50},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit %d", tt.limit), func(t *testing.T) {
			got := e.Suggest("Name", NewQuery(), "", tt.limit, ScopeColumn)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if got[0] != "name-00" {
				t.Errorf("first = %q, want %q", got[0], "name-00")
			}
		})
	}
}

func TestSuggest_UnknownColumn(t *testing.T) {
	e := testEngine(suggestRecords()...)

	got := e.Suggest("Missing", NewQuery(), "", 10, ScopeColumn)
	if got == nil || len(got) != 0 {
		t.Errorf("Suggest(Missing) = %#v, want empty slice", got)
	}
}

func TestSuggest_QueryScope(t *testing.T) {
	e := testEngine(suggestRecords()...)

	base := NewQuery()
	base.Category = "Cotton"
	base.Status = "Active"

	column := e.Suggest("Category", base, "", 10, ScopeColumn)
	if want := []string{"Cotton"}; !slices.Equal(column, want) {
		t.Errorf("column scope = %v, want %v", column, want)
	}

	query := e.Suggest("Category", base, "", 10, ScopeQuery)
	if want := []string{"Cotton", "Wool"}; !slices.Equal(query, want) {
		t.Errorf("query scope = %v, want %v", query, want)
	}
}

func TestSuggest_QueryScopeClearsKeyword(t *testing.T) {
	e := testEngine(suggestRecords()...)

	base := NewQuery()
	base.Keyword = "sato"

	got := e.Suggest("Name", base, "", 10, ScopeQuery)
	if len(got) != 4 {
		t.Errorf("query scope with keyword = %v, want all 4 names", got)
	}

	got = e.Suggest("Name", base, "", 10, ScopeColumn)
	if want := []string{"Sato Taro"}; !slices.Equal(got, want) {
		t.Errorf("column scope with keyword = %v, want %v", got, want)
	}
}

func TestSuggest_DoesNotModifyBase(t *testing.T) {
	e := testEngine(suggestRecords()...)

	base := NewQuery().WithColumnFilter("Status", "Active")
	_ = e.Suggest("Status", base, "", 10, ScopeColumn)

	if base.ColumnFilters.Value("Status") != "Active" {
		t.Error("Suggest removed the filter from the caller's query")
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want Scope
	}{
		{"query", ScopeQuery},
		{" QUERY ", ScopeQuery},
		{"column", ScopeColumn},
		{"", ScopeColumn},
		{"other", ScopeColumn},
	}

	for _, tt := range tests {
		if got := ParseScope(tt.in); got != tt.want {
			t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
