package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get a user-friendly message
//  4. Technical error is logged with the request ID for correlation
//  5. User message is written as JSON or plain text, depending on the client

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/integration"
	"github.com/JonMunkholm/searchtable/internal/logging"
)

// errRateLimited is reported for requests rejected by the rate limiter.
var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Error, Action) fields.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs err and writes the mapped user message.
// Clients that ask for JSON, and every /api route, get an ErrorResponse.
// Everyone else gets plain text.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	level := slog.LevelWarn
	if !core.IsUserFacing(err) {
		level = slog.LevelError
	}

	logger := logging.FromContext(r.Context())
	logger.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, statusCode, ErrorResponse{
			Error:  userMsg.Message,
			Action: userMsg.Action,
			Code:   userMsg.Code,
		})
		return
	}
	respondErrorText(w, userMsg, statusCode)
}

// respondErrorText writes a plain text error response.
func respondErrorText(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	http.Error(w, msg.Message, statusCode)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// integrationStatus maps integration errors to HTTP status codes.
func integrationStatus(err error) int {
	switch {
	case errors.Is(err, integration.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, integration.ErrAlreadyIntegrated),
		errors.Is(err, integration.ErrNotIntegrated):
		return http.StatusConflict
	case errors.Is(err, integration.ErrTooFewRecords):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
}
