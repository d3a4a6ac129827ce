package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/integration"
	"github.com/JonMunkholm/searchtable/internal/logging"
)

// maxIntegrationBody caps the JSON body of POST /api/integrations.
const maxIntegrationBody = 64 << 10

// integrateRequest is the JSON body of POST /api/integrations.
type integrateRequest struct {
	IDs       []int64 `json:"ids"`
	Overrides struct {
		RequestNo      *int   `json:"requestNo"`
		ContractDate   string `json:"contractDate"` // YYYY-MM-DD
		PersonInCharge string `json:"personInCharge"`
	} `json:"overrides"`
}

// integrationResponse mirrors integration.Result.
type integrationResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	RecordID  int64   `json:"recordId"`
	BatchID   string  `json:"batchId,omitempty"`
	SourceIDs []int64 `json:"sourceIds"`
}

// groupResponse mirrors integration.Group.
type groupResponse struct {
	BatchID   string    `json:"batchId"`
	RecordID  int64     `json:"recordId"`
	SourceIDs []int64   `json:"sourceIds"`
	CreatedAt time.Time `json:"createdAt"`
}

func newIntegrationResponse(res integration.Result) integrationResponse {
	return integrationResponse{
		Success:   res.Success,
		Message:   res.Message,
		RecordID:  res.RecordID,
		BatchID:   res.BatchID,
		SourceIDs: res.SourceIDs,
	}
}

func (s *Server) handleIntegrate(w http.ResponseWriter, r *http.Request) {
	var req integrateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIntegrationBody))
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	overrides := integration.Overrides{
		RequestNo:      req.Overrides.RequestNo,
		PersonInCharge: strings.TrimSpace(req.Overrides.PersonInCharge),
	}
	if d := strings.TrimSpace(req.Overrides.ContractDate); d != "" {
		t, err := core.ParseDate(d)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("invalid request body: contractDate: %w", err), http.StatusBadRequest)
			return
		}
		overrides.ContractDate = &t
	}

	res, err := s.integrations.Integrate(req.IDs, overrides)
	if err != nil {
		s.respondError(w, r, err, integrationStatus(err))
		return
	}
	logging.WithFields(r.Context(), "batch_id", res.BatchID).Info("records integrated",
		"record_id", res.RecordID,
		"sources", res.SourceIDs,
	)
	writeJSON(w, http.StatusCreated, newIntegrationResponse(res))
}

func (s *Server) handleUndoIntegration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("undo %q: %w", chi.URLParam(r, "id"), integration.ErrRecordNotFound), http.StatusNotFound)
		return
	}

	res, err := s.integrations.Undo(id)
	if err != nil {
		s.respondError(w, r, err, integrationStatus(err))
		return
	}
	logging.WithFields(r.Context(), "batch_id", res.BatchID).Info("integration undone",
		"record_id", res.RecordID,
		"restored", res.SourceIDs,
	)
	writeJSON(w, http.StatusOK, newIntegrationResponse(res))
}

func (s *Server) handleListIntegrations(w http.ResponseWriter, r *http.Request) {
	groups := s.integrations.Groups()
	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = groupResponse{
			BatchID:   g.BatchID,
			RecordID:  g.RecordID,
			SourceIDs: g.SourceIDs,
			CreatedAt: g.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
