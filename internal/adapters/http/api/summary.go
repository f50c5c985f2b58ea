package api

import (
	"fmt"
	"net/http"
	"strings"
)

// SummaryHandler renders the board as plain text.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleSummary handles GET /summary requests. Each line reads
// "1. Uruguay 6 - Italy 6".
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	matches, err := h.deps.OngoingMatches(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var b strings.Builder
	for i, m := range matches {
		home, away := m.HomeTeamScore(), m.AwayTeamScore()
		fmt.Fprintf(&b, "%d. %s %d - %s %d\n", i+1, home.TeamName(), home.Score(), away.TeamName(), away.Score())
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}
