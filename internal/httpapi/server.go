// Package httpapi exposes the run ledger over HTTP (spec §6.5): a run
// summary, its rendered timeline, and a Prometheus /metrics endpoint.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rtalgs/rtalgs/internal/history"
	"github.com/rtalgs/rtalgs/internal/kernel"
	"github.com/rtalgs/rtalgs/internal/metrics"
	"github.com/rtalgs/rtalgs/internal/render"
)

// Server is the rtalgs HTTP API server.
type Server struct {
	store *history.Store
}

// NewServer returns a Server backed by the given run ledger.
func NewServer(store *history.Store) *Server {
	return &Server{store: store}
}

// Handler returns the chi router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
		r.Get("/{id}/timeline", s.handleGetTimeline)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

type runSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Policy          string    `json:"policy"`
	MaxTime         int       `json:"max_time"`
	ContextSwitches int       `json:"context_switches"`
	Utilization     float64   `json:"utilization"`
	Bound           float64   `json:"bound"`
	Verdict         string    `json:"verdict"`
	CreatedAt       time.Time `json:"created_at"`
}

func toSummary(r history.Record) runSummary {
	return runSummary{
		ID:              r.ID,
		Title:           r.Title,
		Policy:          r.Policy,
		MaxTime:         r.MaxTime,
		ContextSwitches: r.ContextSwitches,
		Utilization:     r.Utilization,
		Bound:           r.Bound,
		Verdict:         r.Verdict,
		CreatedAt:       r.CreatedAt,
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summaries := make([]runSummary, len(records))
	for i, rec := range records {
		summaries[i] = toSummary(rec)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetRun(id)
	if errors.Is(err, history.ErrNotFound) {
		metrics.RunsNotFound.Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.RunsServed.WithLabelValues(rec.Policy).Inc()
	writeJSON(w, http.StatusOK, toSummary(rec))
}

func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetRun(id)
	if errors.Is(err, history.ErrNotFound) {
		metrics.RunsNotFound.Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	width := render.DefaultWidth
	if q := r.URL.Query().Get("width"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			width = n
		}
	}

	result := kernel.Result{History: []byte(rec.Timeline), ContextSwitches: rec.ContextSwitches}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	render.Timeline(w, result, rec.MaxTime, width)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": msg,
	})
}
