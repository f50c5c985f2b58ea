package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/domain/model"
)

// startRequest mirrors the OpenAPI schema for POST /matches.
type startRequest struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

type startResponse struct {
	ID string `json:"id"`
}

// scoreRequest mirrors the OpenAPI schema for PUT /matches/{id}/score.
// Pointers distinguish a missing score from zero.
type scoreRequest struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

func (s scoreRequest) validate() error {
	switch {
	case s.HomeScore == nil:
		return fmt.Errorf("%w: missing home_score", ErrBadRequest)
	case s.AwayScore == nil:
		return fmt.Errorf("%w: missing away_score", ErrBadRequest)
	}
	return nil
}

// matchResponse is the read shape of a single match.
type matchResponse struct {
	ID         string    `json:"id"`
	HomeTeam   string    `json:"home_team"`
	HomeScore  int       `json:"home_score"`
	AwayTeam   string    `json:"away_team"`
	AwayScore  int       `json:"away_score"`
	TotalScore int       `json:"total_score"`
	StartTime  time.Time `json:"start_time"`
}

func newMatchResponse(m model.Match) matchResponse {
	return matchResponse{
		ID:         m.ID().String(),
		HomeTeam:   m.HomeTeamScore().TeamName(),
		HomeScore:  m.HomeTeamScore().Score(),
		AwayTeam:   m.AwayTeamScore().TeamName(),
		AwayScore:  m.AwayTeamScore().Score(),
		TotalScore: m.TotalScore(),
		StartTime:  m.StartTime(),
	}
}

// MatchesHandler handles the match lifecycle routes.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleStart handles POST /matches requests.
func (h *MatchesHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	id, err := h.deps.StartMatch(r.Context(), req.HomeTeam, req.AwayTeam)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, startResponse{ID: id.String()})
}

// HandleUpdateScore handles PUT /matches/{id}/score requests.
func (h *MatchesHandler) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.UpdateMatchScore(r.Context(), id, *req.HomeScore, *req.AwayScore); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFinish handles DELETE /matches/{id} requests. Finishing an unknown
// match is not an error.
func (h *MatchesHandler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	if err := h.deps.FinishMatch(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet handles GET /matches/{id} requests.
func (h *MatchesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	m, found, err := h.deps.Match(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: match %s", ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, newMatchResponse(m))
}

// HandleList handles GET /matches requests, returning matches in summary order.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	matches, err := h.deps.OngoingMatches(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, newMatchResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// matchID parses the {id} path value, writing a 400 when it is not a UUID.
func matchID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid match id %q", ErrBadRequest, raw))
		return uuid.Nil, false
	}
	return id, true
}
