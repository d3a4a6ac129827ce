// Package templates renders the HTML views of the web server as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// ColumnHeader is one table header cell.
type ColumnHeader struct {
	Name    string
	Label   string
	SortURL string // link that sorts by this column
	SortDir string // "asc" or "desc" when the table is sorted by this column, else ""
}

// Row is one rendered record.
type Row struct {
	ID          int64
	Integrated  bool
	Integration string   // integration status label
	Cells       []string // in header order
}

// RecordsPageParams holds everything the records page shows.
type RecordsPageParams struct {
	Columns   []ColumnHeader
	Rows      []Row
	Summary   string
	Page      int
	PageCount int
	PrevURL   string // "" on the first page
	NextURL   string // "" on the last page
	ExportURL string
	Keyword   string

	ErrorMessage string
	ErrorAction  string
	ErrorCode    string
}

// RecordsPage renders the full records page.
func RecordsPage(p RecordsPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Records</title>`)
		hw.raw(`<style>table{border-collapse:collapse;font-size:13px}th,td{border:1px solid #ddd;padding:2px 6px;white-space:nowrap}tr.integrated{background:#eef6ff}.alert{background:#fde8e8;border:1px solid #f5c2c2;padding:8px;margin:8px 0}</style>`)
		hw.raw(`</head><body>`)

		hw.raw(`<form method="get" action="/records"><input type="search" name="keyword" value="`)
		hw.text(p.Keyword)
		hw.raw(`" placeholder="Name"><button type="submit">Search</button> <a href="`)
		hw.text(p.ExportURL)
		hw.raw(`">Export CSV</a></form>`)

		if p.ErrorMessage != "" {
			if err := ErrorAlert(p.ErrorMessage, p.ErrorAction, p.ErrorCode).Render(ctx, w); err != nil {
				return err
			}
		}

		hw.raw(`<p class="summary">`)
		hw.text(p.Summary)
		hw.raw(`</p><table><thead><tr>`)
		for _, c := range p.Columns {
			hw.raw(`<th><a href="`)
			hw.text(c.SortURL)
			hw.raw(`">`)
			hw.text(c.Label)
			switch c.SortDir {
			case "asc":
				hw.raw(" &#9650;")
			case "desc":
				hw.raw(" &#9660;")
			}
			hw.raw(`</a></th>`)
		}
		hw.raw(`</tr></thead><tbody>`)
		for _, row := range p.Rows {
			if row.Integrated {
				hw.raw(`<tr class="integrated" data-id="`)
			} else {
				hw.raw(`<tr data-id="`)
			}
			hw.raw(strconv.FormatInt(row.ID, 10))
			hw.raw(`" data-integration="`)
			hw.text(row.Integration)
			hw.raw(`">`)
			for _, cell := range row.Cells {
				hw.raw(`<td>`)
				hw.text(cell)
				hw.raw(`</td>`)
			}
			hw.raw(`</tr>`)
		}
		hw.raw(`</tbody></table>`)

		hw.raw(`<nav class="pager">`)
		if p.PrevURL != "" {
			hw.raw(`<a rel="prev" href="`)
			hw.text(p.PrevURL)
			hw.raw(`">Previous</a> `)
		}
		hw.raw(`<span>Page `)
		hw.raw(strconv.Itoa(p.Page))
		hw.raw(` of `)
		hw.raw(strconv.Itoa(p.PageCount))
		hw.raw(`</span>`)
		if p.NextURL != "" {
			hw.raw(` <a rel="next" href="`)
			hw.text(p.NextURL)
			hw.raw(`">Next</a>`)
		}
		hw.raw(`</nav></body></html>`)

		return hw.err
	})
}

// ErrorAlert renders a user-facing error banner.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="alert" role="alert"><strong>`)
		hw.text(message)
		hw.raw(`</strong>`)
		if action != "" {
			hw.raw(` <span>`)
			hw.text(action)
			hw.raw(`</span>`)
		}
		if code != "" {
			hw.raw(` <small>(`)
			hw.text(code)
			hw.raw(`)</small>`)
		}
		hw.raw(`</div>`)
		return hw.err
	})
}

// htmlWriter stops writing after the first error and keeps it.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}
