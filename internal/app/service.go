// Package service provides the scoreboard: the business rules for starting,
// updating, finishing and ranking live matches on top of a repository.Store.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/adapters/repository"
	"github.com/fszuberski/scoreboard/internal/domain/model"
	"github.com/fszuberski/scoreboard/internal/domain/ranking"
	"github.com/fszuberski/scoreboard/pkg/logger"
	"github.com/fszuberski/scoreboard/pkg/metrics"
)

// Operation names used for metrics labels.
const (
	opStart  = "start_match"
	opUpdate = "update_score"
	opFinish = "finish_match"
)

// Scoreboard validates and orchestrates the match lifecycle against a Store.
// The store is fixed at construction. Mutations are serialized so the
// check-then-write in UpdateMatchScore cannot interleave.
type Scoreboard struct {
	mu sync.Mutex

	store  repository.Store
	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Scoreboard.
type Option func(*Scoreboard)

// WithLogger sets a custom logger for the scoreboard.
func WithLogger(l logger.Logger) Option {
	return func(s *Scoreboard) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source used for match start times.
func WithClock(now func() time.Time) Option {
	return func(s *Scoreboard) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Scoreboard backed by a fresh in-memory store.
func New(opts ...Option) *Scoreboard {
	s, _ := NewWithStore(repository.NewMemoryStore(), opts...)
	return s
}

// NewWithStore constructs a Scoreboard on top of store.
func NewWithStore(store repository.Store, opts ...Option) (*Scoreboard, error) {
	if store == nil {
		return nil, model.InvalidArgument("MatchStore cannot be null.")
	}
	s := &Scoreboard{
		store:  store,
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartMatch starts a new match at 0:0 and returns its id.
func (s *Scoreboard) StartMatch(ctx context.Context, homeTeamName, awayTeamName string) (uuid.UUID, error) {
	if model.IsBlank(homeTeamName) {
		return uuid.Nil, s.reject(ctx, opStart, "blank_home_team", model.InvalidArgument("HomeTeamName cannot be null or blank."))
	}
	if model.IsBlank(awayTeamName) {
		return uuid.Nil, s.reject(ctx, opStart, "blank_away_team", model.InvalidArgument("AwayTeamName cannot be null or blank."))
	}

	home, err := model.NewInitialTeamScore(homeTeamName)
	if err != nil {
		return uuid.Nil, err
	}
	away, err := model.NewInitialTeamScore(awayTeamName)
	if err != nil {
		return uuid.Nil, err
	}
	match, err := model.NewMatch(uuid.New(), home, away, s.now())
	if err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, match); err != nil {
		return uuid.Nil, err
	}

	metrics.RecordMatchStarted()
	s.logger.Info(ctx, "match started",
		logger.Stringer("matchID", match.ID()),
		logger.String("home", homeTeamName),
		logger.String("away", awayTeamName),
	)
	return match.ID(), nil
}

// UpdateMatchScore sets new absolute scores for an ongoing match. Scores
// never decrease while a match is in progress.
func (s *Scoreboard) UpdateMatchScore(ctx context.Context, matchID uuid.UUID, homeScore, awayScore int) error {
	if matchID == uuid.Nil {
		return s.reject(ctx, opUpdate, "nil_id", model.InvalidArgument("MatchId cannot be null."))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok, err := s.store.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(ctx, opUpdate, "not_in_progress", model.NewError(
			fmt.Sprintf("Match with id='%s' is not currently in progress.", matchID),
			model.ErrInvalidArgument, ErrMatchNotInProgress))
	}
	if match.HomeTeamScore().Score() > homeScore || match.AwayTeamScore().Score() > awayScore {
		return s.reject(ctx, opUpdate, "score_decreased", model.InvalidArgument("New score cannot be lower than the previous score."))
	}

	updated, err := match.WithScores(homeScore, awayScore)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, matchID, updated); err != nil {
		return err
	}

	metrics.RecordScoreUpdate()
	s.logger.Debug(ctx, "match score updated",
		logger.Stringer("matchID", matchID),
		logger.Int("home", homeScore),
		logger.Int("away", awayScore),
	)
	return nil
}

// FinishMatch removes a match from the board. Finishing an unknown match
// is a no-op.
func (s *Scoreboard) FinishMatch(ctx context.Context, matchID uuid.UUID) error {
	if matchID == uuid.Nil {
		return s.reject(ctx, opFinish, "nil_id", model.InvalidArgument("MatchId cannot be null."))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, matchID); err != nil {
		return err
	}

	metrics.RecordMatchFinished()
	s.logger.Info(ctx, "match finished", logger.Stringer("matchID", matchID))
	return nil
}

// OngoingMatches returns every match in progress, highest total score
// first; among equal totals the most recently started match comes first.
func (s *Scoreboard) OngoingMatches(ctx context.Context) ([]model.Match, error) {
	matches, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	ranked := ranking.Sort(matches, ranking.Summary)
	metrics.UpdateOngoingMatches(len(ranked))
	return ranked, nil
}

// Match returns a single ongoing match.
func (s *Scoreboard) Match(ctx context.Context, matchID uuid.UUID) (model.Match, bool, error) {
	if matchID == uuid.Nil {
		return model.Match{}, false, model.InvalidArgument("MatchId cannot be null.")
	}
	return s.store.Get(ctx, matchID)
}

func (s *Scoreboard) reject(ctx context.Context, op, reason string, err error) error {
	metrics.RecordRejected(op, reason)
	s.logger.Debug(ctx, "request rejected",
		logger.String("operation", op),
		logger.String("reason", reason),
		logger.Error(err),
	)
	return err
}
