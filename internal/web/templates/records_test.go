package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func render(t *testing.T, p RecordsPageParams) string {
	t.Helper()
	var sb strings.Builder
	if err := RecordsPage(p).Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return sb.String()
}

func TestRecordsPage_EscapesCells(t *testing.T) {
	html := render(t, RecordsPageParams{
		Columns: []ColumnHeader{{Name: "Name", Label: "Name", SortURL: "/records?sortBy=Name&sortDir=asc"}},
		Rows:    []Row{{ID: 1, Cells: []string{`<script>alert("x")</script>`}}},
		Summary: "Showing 1 - 1 of 1 records",
		Page:    1, PageCount: 1,
	})

	if strings.Contains(html, "<script>") {
		t.Error("cell content was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped cell content missing")
	}
	if !strings.Contains(html, "sortBy=Name&amp;sortDir=asc") {
		t.Error("sort URL not escaped into attribute")
	}
	if !strings.Contains(html, "Showing 1 - 1 of 1 records") {
		t.Error("summary missing")
	}
}

func TestRecordsPage_ErrorBannerAndPager(t *testing.T) {
	html := render(t, RecordsPageParams{
		Summary:      "No records found",
		Page:         1,
		PageCount:    1,
		ErrorMessage: "Updated From must be earlier than Updated To.",
		ErrorCode:    "VAL001",
	})

	if !strings.Contains(html, `role="alert"`) || !strings.Contains(html, "VAL001") {
		t.Error("error banner missing")
	}
	if strings.Contains(html, `rel="prev"`) || strings.Contains(html, `rel="next"`) {
		t.Error("pager links rendered on a single page")
	}
	if !strings.Contains(html, "Page 1 of 1") {
		t.Error("page indicator missing")
	}
}

func TestRecordsPage_IntegratedRow(t *testing.T) {
	html := render(t, RecordsPageParams{
		Rows: []Row{{ID: 7, Integrated: true, Integration: "あり", Cells: []string{"x"}}},
		Page: 1, PageCount: 2, NextURL: "/records?page=2",
	})
	if !strings.Contains(html, `<tr class="integrated" data-id="7" data-integration="あり">`) {
		t.Error("integrated row not marked")
	}
	if !strings.Contains(html, `rel="next" href="/records?page=2"`) {
		t.Error("next link missing")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRecordsPage_WriteError(t *testing.T) {
	if err := RecordsPage(RecordsPageParams{}).Render(context.Background(), failingWriter{}); err == nil {
		t.Error("expected write error")
	}
}
