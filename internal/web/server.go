// Package web provides the HTTP server and handlers for browsing records.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/searchtable/internal/config"
	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/integration"
	"github.com/JonMunkholm/searchtable/internal/store"
	mw "github.com/JonMunkholm/searchtable/internal/web/middleware"
)

// visitorTTL is how long an idle client keeps its rate limit bucket.
const visitorTTL = 10 * time.Minute

// Deps are the services the server routes to.
type Deps struct {
	Store        *store.Memory
	Engine       *core.Engine
	Exporter     *core.Exporter
	Integrations *integration.Service
}

// Server is the HTTP server for the records application.
type Server struct {
	cfg          *config.Config
	store        *store.Memory
	engine       *core.Engine
	exporter     *core.Exporter
	integrations *integration.Service
	exports      *core.ExportLimiter

	router *chi.Mux
	server *http.Server

	// stop ends background work started by middleware.
	stop context.CancelFunc
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, deps Deps) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:          cfg,
		store:        deps.Store,
		engine:       deps.Engine,
		exporter:     deps.Exporter,
		integrations: deps.Integrations,
		exports:      core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWaitTime),
		router:       chi.NewRouter(),
		stop:         cancel,
	}
	s.setupMiddleware(ctx)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware(ctx context.Context) {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := mw.NewRateLimiter(ctx, s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst, visitorTTL,
			http.HandlerFunc(s.handleRateLimited))
		s.router.Use(limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/records", http.StatusFound)
	})
	s.router.Get("/records", s.handleRecordsPage)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/columns", s.handleColumns)

		r.Get("/records", s.handleRecords)
		r.Get("/records/suggestions", s.handleSuggestions)
		r.Get("/records/export", s.handleExport)

		r.Get("/integrations", s.handleListIntegrations)
		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(&s.cfg.Security))
			r.Post("/integrations", s.handleIntegrate)
			r.Post("/integrations/{id}/undo", s.handleUndoIntegration)
		})
	})
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and waits for running exports.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.stop()

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return s.exports.WaitForDrain(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// The records page only uses an inline stylesheet.
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'none'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
