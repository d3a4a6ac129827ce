package core

import (
	"errors"
	"strings"
	"testing"
)

func TestQuoteField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`say "hi"`, `"say ""hi"""`},
		{"a,b", `"a,b"`},
		{"line\nbreak", "\"line\nbreak\""},
	}

	for _, tt := range tests {
		if got := QuoteField(tt.in); got != tt.want {
			t.Errorf("QuoteField(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestExporter_Header(t *testing.T) {
	x := NewExporter(DefaultCatalog())
	doc := x.ToDelimitedText(nil)

	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"ID","Name","Category","Status","UpdatedAt","Amount","Field01"`) {
		t.Errorf("header = %s", lines[0][:80])
	}
	if strings.Contains(lines[0], "Updated At") {
		t.Error("header uses display labels instead of column names")
	}
	if n := strings.Count(lines[0], ","); n != DefaultCatalog().Len()-1 {
		t.Errorf("header separators = %d, want %d", n, DefaultCatalog().Len()-1)
	}
}

func TestExporter_Rows(t *testing.T) {
	records := threeRecords()
	records[1].Name = `Suzuki "Hana" Hanako`
	x := NewExporter(DefaultCatalog())

	doc := x.ToDelimitedText(records)
	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")

	if len(lines) != len(records)+1 {
		t.Fatalf("lines = %d, want %d", len(lines), len(records)+1)
	}
	if !strings.HasPrefix(lines[1], `"1","Sato Taro","A","Active","2024-01-10","300","PO-0001",""`) {
		t.Errorf("row 1 = %s", lines[1][:60])
	}
	if !strings.Contains(lines[2], `"Suzuki ""Hana"" Hanako"`) {
		t.Errorf("row 2 did not double quotes: %s", lines[2][:60])
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExporter_WriteError(t *testing.T) {
	x := NewExporter(DefaultCatalog())
	if err := x.WriteDelimited(failingWriter{}, threeRecords()); err == nil {
		t.Error("WriteDelimited() should report writer errors")
	}
}
