// Package model contains the scoreboard value types passed between layers.
package model

import "strings"

// TeamScore pairs a team name with its running score. It is an immutable
// value; any change produces a new TeamScore.
type TeamScore struct {
	teamName string
	score    int
}

// NewTeamScore validates and builds a TeamScore.
func NewTeamScore(teamName string, score int) (TeamScore, error) {
	if IsBlank(teamName) {
		return TeamScore{}, InvalidArgument("TeamName cannot be null or blank.")
	}
	if score < 0 {
		return TeamScore{}, InvalidArgument("Score cannot be less than 0.")
	}
	return TeamScore{teamName: teamName, score: score}, nil
}

// NewInitialTeamScore builds a TeamScore with a score of 0.
func NewInitialTeamScore(teamName string) (TeamScore, error) {
	return NewTeamScore(teamName, 0)
}

// TeamName returns the team name.
func (t TeamScore) TeamName() string { return t.teamName }

// Score returns the current score.
func (t TeamScore) Score() int { return t.score }

// IsZero reports whether t was never constructed.
func (t TeamScore) IsZero() bool { return t == TeamScore{} }

// WithScore returns a copy of t carrying score.
func (t TeamScore) WithScore(score int) (TeamScore, error) {
	return NewTeamScore(t.teamName, score)
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
