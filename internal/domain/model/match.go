package model

import (
	"time"

	"github.com/google/uuid"
)

// Match is one in-progress contest between a home and an away team.
// Updates never mutate a Match; they build a new value that replaces the
// stored one.
type Match struct {
	id            uuid.UUID
	homeTeamScore TeamScore
	awayTeamScore TeamScore
	startTime     time.Time
}

// NewMatch is the canonical constructor. The zero uuid, a zero TeamScore
// and the zero time all count as absent.
func NewMatch(id uuid.UUID, home, away TeamScore, startTime time.Time) (Match, error) {
	switch {
	case id == uuid.Nil:
		return Match{}, InvalidArgument("Match id cannot be null.")
	case home.IsZero():
		return Match{}, InvalidArgument("HomeTeamScore cannot be null.")
	case away.IsZero():
		return Match{}, InvalidArgument("AwayTeamScore cannot be null.")
	case startTime.IsZero():
		return Match{}, InvalidArgument("StartTime cannot be null.")
	}
	return Match{id: id, homeTeamScore: home, awayTeamScore: away, startTime: startTime}, nil
}

// StartMatch builds a Match with a fresh random id that starts now.
func StartMatch(home, away TeamScore) (Match, error) {
	return NewMatch(uuid.New(), home, away, time.Now())
}

// ID returns the match identity.
func (m Match) ID() uuid.UUID { return m.id }

// HomeTeamScore returns the home side.
func (m Match) HomeTeamScore() TeamScore { return m.homeTeamScore }

// AwayTeamScore returns the away side.
func (m Match) AwayTeamScore() TeamScore { return m.awayTeamScore }

// StartTime returns when the match started.
func (m Match) StartTime() time.Time { return m.startTime }

// TotalScore is the sum of both teams' scores.
func (m Match) TotalScore() int {
	return m.homeTeamScore.score + m.awayTeamScore.score
}

// WithScores returns a copy of m with both scores replaced by the given
// absolute values. Id, team names and start time are preserved.
func (m Match) WithScores(homeScore, awayScore int) (Match, error) {
	home, err := m.homeTeamScore.WithScore(homeScore)
	if err != nil {
		return Match{}, err
	}
	away, err := m.awayTeamScore.WithScore(awayScore)
	if err != nil {
		return Match{}, err
	}
	return NewMatch(m.id, home, away, m.startTime)
}

// Equal reports whether all four fields are equal. Start times are
// compared as instants, ignoring location and monotonic readings.
func (m Match) Equal(o Match) bool {
	return m.id == o.id &&
		m.homeTeamScore == o.homeTeamScore &&
		m.awayTeamScore == o.awayTeamScore &&
		m.startTime.Equal(o.startTime)
}
