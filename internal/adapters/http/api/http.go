// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/festa/internal/domain/dedupe"
	"github.com/okian/festa/internal/domain/model"
	"github.com/okian/festa/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a candidate event for async scoring.
	// Returns false on backpressure.
	Enqueue(ctx context.Context, submissionID string, e model.Event) bool

	// AppendAttended records an attended event into the taste profile.
	AppendAttended(ctx context.Context, e model.Event)

	// Read operations expose recommendation data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, name string) (Entry, error)
}

// Entry mirrors the read shape returned by recommendation queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	eventsHandler          *EventsHandler
	recommendationsHandler *RecommendationsHandler
	verdictHandler         *VerdictHandler
	profileHandler         *ProfileHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		eventsHandler:          NewEventsHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, maxLimit),
		verdictHandler:         NewVerdictHandler(deps),
		profileHandler:         NewProfileHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/verdict/", MetricsMiddleware(s.verdictHandler.HandleGetVerdict, "verdict"))
	mux.HandleFunc("/profile/events", MetricsMiddleware(s.profileHandler.HandlePostAttended, "profile_events"))
}

// eventRequest mirrors the OpenAPI schema for candidate and attended
// event submissions.
type eventRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Distance      float64 `json:"distance"`
	Popularity    float64 `json:"popularity"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"duration_hours"`
	Start         string  `json:"start"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(e.Category) == "":
		return errors.New("missing category")
	case e.DurationHours <= 0:
		return errors.New("duration_hours must be positive")
	case strings.TrimSpace(e.Start) == "":
		return errors.New("missing start")
	}
	if _, err := time.Parse(time.RFC3339, e.Start); err != nil {
		return errors.New("invalid start; must be RFC3339")
	}
	return nil
}

// event converts the request into a validated domain event.
func (e eventRequest) event() (model.Event, error) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return model.Event{}, err
	}
	return model.NewEvent(e.Name, e.Category, e.Price, e.Distance, e.Popularity, e.Description, e.DurationHours, start)
}

type ackResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	SubmissionID string `json:"submission_id,omitempty"`
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
