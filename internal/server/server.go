// Package server implements the planwright HTTP API: stateless engine
// endpoints (placement checks, door geometry, snapping), plan CRUD over
// the configured store, per-plan rendering, and editing presence.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planwright/planwright/internal/config"
	apperrors "github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/session"
	"github.com/planwright/planwright/pkg/store"
)

// Server holds the API dependencies. All fields must be set; New
// applies the defaults.
type Server struct {
	Store    store.Store
	Sessions session.Store
	Runner   *pipeline.Runner
	Config   config.Config
	Logger   *log.Logger
}

// New creates a server. A nil runner gets an uncached one; a nil logger
// gets the default.
func New(st store.Store, sessions session.Store, runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	return &Server{
		Store:    st,
		Sessions: sessions,
		Runner:   runner,
		Config:   cfg,
		Logger:   logger,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/placement/check", s.handlePlacementCheck)
		r.Post("/placement/nearest", s.handlePlacementNearest)
		r.Post("/geometry/doors", s.handleDoorGeometry)
		r.Post("/snap/rooms", s.handleSnapRooms)
		r.Post("/snap/walls", s.handleSnapWalls)

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handleListPlans)
			r.Post("/", s.handleCreatePlan)
			r.Route("/{planID}", func(r chi.Router) {
				r.Get("/", s.handleGetPlan)
				r.Put("/", s.handlePutPlan)
				r.Delete("/", s.handleDeletePlan)
				r.Get("/report", s.handleReport)
				r.Get("/render.svg", s.handleRenderSVG)
				r.Get("/graph.dot", s.handleGraphDOT)

				r.Route("/sessions", func(r chi.Router) {
					r.Get("/", s.handleListSessions)
					r.Post("/", s.handleCreateSession)
					r.Post("/{sessionID}/heartbeat", s.handleHeartbeat)
					r.Delete("/{sessionID}", s.handleDeleteSession)
				})
			})
		})
	})

	return r
}

// ListenAndServe runs the API server until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

// writeError maps structured errors to their HTTP status; everything
// else is a 500.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: apperrors.ErrCodeSessionNotFound})
		return
	}
	code := apperrors.GetCode(err)
	writeJSON(w, apperrors.HTTPStatus(code), errorBody{Error: apperrors.UserMessage(err), Code: code})
}

// decode reads a JSON request body, reporting malformed input as a
// structured 400.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
