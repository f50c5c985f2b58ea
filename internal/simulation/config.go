// Package simulation drives a running scoreboard over HTTP: it starts a batch
// of matches, plays monotonic score updates against them concurrently, and
// checks that the board the service returns matches what was played.
package simulation

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL         string        // Base URL of the service
	Matches         int           // Number of matches to start
	UpdatesPerMatch int           // Score updates per match; negative disables updates
	MaxGoalsPerStep int           // Upper bound of goals added by one update, per team
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	FinishAll       bool          // Finish every match after verification
	Verbose         bool          // Log every failed request
}

// Defaults applied by Run when a field is left at zero.
const (
	defaultMatches         = 100
	defaultUpdatesPerMatch = 10
	defaultMaxGoalsPerStep = 2
	defaultWorkers         = 8
	defaultTimeout         = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Matches <= 0 {
		c.Matches = defaultMatches
	}
	if c.UpdatesPerMatch < 0 {
		c.UpdatesPerMatch = 0
	} else if c.UpdatesPerMatch == 0 {
		c.UpdatesPerMatch = defaultUpdatesPerMatch
	}
	if c.MaxGoalsPerStep <= 0 {
		c.MaxGoalsPerStep = defaultMaxGoalsPerStep
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// played is the client-side record of one match.
type played struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
}

// boardEntry mirrors one element of GET /matches.
type boardEntry struct {
	ID         string    `json:"id"`
	HomeTeam   string    `json:"home_team"`
	HomeScore  int       `json:"home_score"`
	AwayTeam   string    `json:"away_team"`
	AwayScore  int       `json:"away_score"`
	TotalScore int       `json:"total_score"`
	StartTime  time.Time `json:"start_time"`
}

// Stats holds run statistics.
type Stats struct {
	MatchesStarted  int
	UpdatesApplied  int
	UpdatesFailed   int
	MatchesFinished int
	BoardSize       int
	StartTime       time.Time
	Duration        time.Duration
}
