// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/adapters/repository"
	service "github.com/fszuberski/scoreboard/internal/app"
	"github.com/fszuberski/scoreboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the scoreboard implementation.
type Dependencies interface {
	StartMatch(ctx context.Context, homeTeamName, awayTeamName string) (uuid.UUID, error)
	UpdateMatchScore(ctx context.Context, matchID uuid.UUID, homeScore, awayScore int) error
	FinishMatch(ctx context.Context, matchID uuid.UUID) error

	// Read operations expose the live board.
	OngoingMatches(ctx context.Context) ([]model.Match, error)
	Match(ctx context.Context, matchID uuid.UUID) (model.Match, bool, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	matchesHandler *MatchesHandler
	summaryHandler *SummaryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		matchesHandler: NewMatchesHandler(deps),
		summaryHandler: NewSummaryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))

	mux.HandleFunc("POST /matches", MetricsMiddleware(s.matchesHandler.HandleStart, "start_match"))
	mux.HandleFunc("GET /matches", MetricsMiddleware(s.matchesHandler.HandleList, "list_matches"))
	mux.HandleFunc("GET /matches/{id}", MetricsMiddleware(s.matchesHandler.HandleGet, "get_match"))
	mux.HandleFunc("PUT /matches/{id}/score", MetricsMiddleware(s.matchesHandler.HandleUpdateScore, "update_score"))
	mux.HandleFunc("DELETE /matches/{id}", MetricsMiddleware(s.matchesHandler.HandleFinish, "finish_match"))
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

// writeDomainError maps scoreboard errors onto HTTP statuses. Not-in-progress
// is checked first because it is also an invalid argument.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotInProgress):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
