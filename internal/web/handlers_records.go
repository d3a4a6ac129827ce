package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/logging"
	"github.com/JonMunkholm/searchtable/internal/web/templates"
)

// integrationKey carries the integration status in each JSON row. It is not a
// catalog column, so it cannot be filtered or sorted.
const integrationKey = "integration"

// recordsResponse is the JSON body of GET /api/records.
type recordsResponse struct {
	Rows       []map[string]string `json:"rows"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	PageCount  int                 `json:"pageCount"`
	SortBy     string              `json:"sortBy"`
	SortDir    string              `json:"sortDir"`
	Summary    string              `json:"summary"`
}

// columnResponse describes one catalog column.
type columnResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r.URL.Query())

	result, err := s.engine.Records(q)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logging.WithQuery(r.Context(), q).Debug("records listed", "total", result.TotalCount)

	catalog := s.engine.Catalog()
	rows := make([]map[string]string, len(result.Items))
	for i, rec := range result.Items {
		row := make(map[string]string, catalog.Len()+1)
		for _, col := range catalog.All() {
			row[col.Name] = col.Render(rec)
		}
		row[integrationKey] = rec.IntegrationStatus()
		rows[i] = row
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Rows:       rows,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
		PageCount:  result.PageCount,
		SortBy:     result.SortBy,
		SortDir:    result.SortDir,
		Summary:    result.Summary(),
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	field := strings.TrimSpace(values.Get("field"))
	if field == "" {
		writeJSON(w, http.StatusOK, map[string][]string{"values": {}})
		return
	}

	suggestions := s.engine.Suggest(
		field,
		parseQuery(values),
		values.Get("term"),
		parseIntParam(values, "limit", core.DefaultSuggestionLimit),
		core.ParseScope(values.Get("scope")),
	)
	writeJSON(w, http.StatusOK, map[string][]string{"values": suggestions})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r.URL.Query())

	result, err := s.engine.AllRecords(q)
	if err != nil {
		respondErrorText(w, core.MapError(err), http.StatusBadRequest)
		return
	}

	if err := s.exports.Acquire(r.Context()); err != nil {
		status := http.StatusServiceUnavailable
		if !errors.Is(err, core.ErrTooManyExports) {
			status = http.StatusRequestTimeout
		}
		respondErrorText(w, core.MapError(err), status)
		return
	}
	defer s.exports.Release()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.cfg.Export.Filename))

	if err := s.exporter.WriteDelimited(w, result.Items); err != nil {
		// Headers are already sent; the client sees a truncated file.
		logging.FromContext(r.Context()).Error("export failed", "error", err, "rows", len(result.Items))
		return
	}

	logging.WithQuery(r.Context(), q).Info("records exported", "rows", len(result.Items))
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	cols := s.engine.Catalog().All()
	resp := make([]columnResponse, len(cols))
	for i, c := range cols {
		resp[i] = columnResponse{Name: c.Name, Label: c.Label, Type: c.Type.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRecordsPage renders the HTML table. An invalid query still renders
// the page, with an empty result and an error banner.
func (s *Server) handleRecordsPage(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := parseQuery(values)

	result, err := s.engine.Records(q)

	params := templates.RecordsPageParams{
		Summary:   result.Summary(),
		Page:      result.Page,
		PageCount: result.PageCount,
		ExportURL: "/api/records/export?" + exportQuery(values),
		Keyword:   values.Get("keyword"),
	}
	if err != nil {
		msg := core.MapError(err)
		params.ErrorMessage = msg.Message
		params.ErrorAction = msg.Action
		params.ErrorCode = msg.Code
	}
	if result.Page > 1 {
		params.PrevURL = "/records?" + withParam(r, "page", fmt.Sprint(result.Page-1))
	}
	if result.Page < result.PageCount {
		params.NextURL = "/records?" + withParam(r, "page", fmt.Sprint(result.Page+1))
	}

	catalog := s.engine.Catalog()
	for _, col := range catalog.All() {
		header := templates.ColumnHeader{Name: col.Name, Label: col.Label}
		dir := core.SortAsc
		if strings.EqualFold(result.SortBy, col.Name) {
			header.SortDir = result.SortDir
			if result.SortDir == core.SortAsc {
				dir = core.SortDesc
			}
		}
		sorted := r.URL.Query()
		sorted.Set("sortBy", col.Name)
		sorted.Set("sortDir", dir)
		sorted.Del("page")
		header.SortURL = "/records?" + sorted.Encode()
		params.Columns = append(params.Columns, header)
	}

	for _, rec := range result.Items {
		row := templates.Row{
			ID:          rec.ID,
			Integrated:  rec.IsIntegrationResult,
			Integration: rec.IntegrationStatus(),
		}
		for _, col := range catalog.All() {
			row.Cells = append(row.Cells, col.Render(rec))
		}
		params.Rows = append(params.Rows, row)
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.RecordsPage(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render records page", "error", err)
	}
}

// exportQuery drops paging parameters from values.
func exportQuery(values url.Values) string {
	v := url.Values{}
	for key, vals := range values {
		if key == "page" || key == "pageSize" {
			continue
		}
		v[key] = vals
	}
	return v.Encode()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": s.store.Len()})
}
