package core

// export.go renders records as delimited text.
//
// Every field is quoted, whether or not it contains a delimiter, and embedded
// quotes are doubled. encoding/csv only quotes when structurally required, so
// the writer here emits fields itself.

import (
	"bufio"
	"io"
	"strings"
)

// Exporter writes records using a catalog's column order.
type Exporter struct {
	catalog *Catalog
}

// NewExporter creates an exporter for catalog.
func NewExporter(catalog *Catalog) *Exporter {
	return &Exporter{catalog: catalog}
}

// ToDelimitedText returns the header row followed by one row per record.
func (x *Exporter) ToDelimitedText(records []*Record) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = x.WriteDelimited(&b, records)
	return b.String()
}

// WriteDelimited streams the document to w.
// The header row holds raw column names, not display labels.
func (x *Exporter) WriteDelimited(w io.Writer, records []*Record) error {
	bw := bufio.NewWriter(w)
	columns := x.catalog.All()

	if err := writeRow(bw, x.catalog.Names()); err != nil {
		return err
	}

	cells := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			cells[i] = col.Render(r)
		}
		if err := writeRow(bw, cells); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// writeRow writes one line of quoted fields. bufio errors are sticky, so
// the newline's error covers the whole row.
func writeRow(bw *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(QuoteField(f))
	}
	return bw.WriteByte('\n')
}

// QuoteField wraps s in double quotes, doubling any quotes inside it.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
