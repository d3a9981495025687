// Package api declares HTTP contracts and route registration helpers.
//
// The pull endpoint stands in for the host's callback-dispatch
// mechanism: one request per pull, one definite status back.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/atompull/internal/adapters/encode"
	"github.com/okian/atompull/internal/collector"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// OnPull answers one pull request for an atom kind.
	OnPull(ctx context.Context, kind atom.Kind) (collector.Result, []encode.Record)

	// SeenAndRecord and Unrecord provide ingest idempotency.
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)

	// Enqueue pushes a raw event for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, e model.RawEvent) bool
}

// RawEvent mirrors the ingest envelope accepted by POST /events.
type RawEvent = model.RawEvent

// Server wires HTTP routes for the collector API.
type Server struct {
	pullHandler   *PullHandler
	eventsHandler *EventsHandler
	statsHandler  *StatsHandler
	healthHandler *HealthHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithPullLimiter rate-limits the pull endpoint.
func WithPullLimiter(limiter *rate.Limiter) Option {
	return func(s *Server) {
		s.pullHandler.limiter = limiter
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		pullHandler:   NewPullHandler(deps),
		eventsHandler: NewEventsHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		healthHandler: NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/pull/", MetricsMiddleware(s.pullHandler.HandlePull, "pull"))
}

type pullResponse struct {
	Status  string          `json:"status"`
	Records []encode.Record `json:"records"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
