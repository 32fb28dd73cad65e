package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resumer advances a stored run.
type Resumer interface {
	Resume(ctx context.Context, id string, steps int) (*domain.Snapshot, error)
}

// Server serves the snapshot API.
type Server struct {
	Store    ports.SnapshotStore
	Resumer  Resumer
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithResumer enables POST /snapshots/{id}/advance.
func WithResumer(r Resumer) Option {
	return func(s *Server) {
		s.Resumer = r
	}
}

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler over store.
func NewHandler(store ports.SnapshotStore, opts ...Option) http.Handler {
	s := &Server{
		Store:  store,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.Health)
	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.ListSnapshots)
		r.Get("/{id}", s.GetSnapshot)
		r.Delete("/{id}", s.DeleteSnapshot)
		if s.Resumer != nil {
			r.Post("/{id}/advance", s.Advance)
		}
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListSnapshots handles GET /snapshots.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "List snapshots failed", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetSnapshot handles GET /snapshots/{id}.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Load snapshot failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSnapshot handles DELETE /snapshots/{id}.
func (s *Server) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "Delete snapshot failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Advance handles POST /snapshots/{id}/advance?steps=N.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	steps := 1
	if raw := r.URL.Query().Get("steps"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "steps must be a non-negative integer", http.StatusBadRequest)
			return
		}
		steps = n
	}

	snap, err := s.Resumer.Resume(r.Context(), chi.URLParam(r, "id"), steps)
	if err != nil {
		s.fail(w, "Advance failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidSnapshot), errors.Is(err, domain.ErrUnknownKind):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.Logger.Error(msg, "err", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
