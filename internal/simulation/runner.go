package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fszuberski/scoreboard/pkg/logger"
)

// Run executes a complete simulation against cfg.BaseURL.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	stats := &Stats{StartTime: time.Now()}
	c := newClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting scoreboard simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("matches", cfg.Matches),
		logger.Int("updatesPerMatch", cfg.UpdatesPerMatch),
		logger.Int("workers", cfg.Workers))

	if err := c.health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	matches, err := startMatches(ctx, c, cfg.Matches)
	stats.MatchesStarted = len(matches)
	if err != nil {
		return stats, fmt.Errorf("start matches: %w", err)
	}

	applied, failed := playMatches(ctx, c, cfg, matches, log)
	stats.UpdatesApplied, stats.UpdatesFailed = applied, failed

	board, err := c.board(ctx)
	if err != nil {
		return stats, fmt.Errorf("read board: %w", err)
	}
	stats.BoardSize = len(board)
	if err := verifyBoard(matches, board); err != nil {
		return stats, fmt.Errorf("board verification failed: %w", err)
	}
	log.Info(ctx, "board verified", logger.Int("boardSize", len(board)))

	if cfg.FinishAll {
		for _, m := range matches {
			if err := c.finish(ctx, m.ID); err != nil {
				return stats, fmt.Errorf("finish match %s: %w", m.ID, err)
			}
			stats.MatchesFinished++
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "simulation completed",
		logger.Int("matchesStarted", stats.MatchesStarted),
		logger.Int("updatesApplied", stats.UpdatesApplied),
		logger.Int("updatesFailed", stats.UpdatesFailed),
		logger.Int("matchesFinished", stats.MatchesFinished),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}

// startMatches starts n matches sequentially so start times follow index order.
func startMatches(ctx context.Context, c *client, n int) ([]*played, error) {
	matches := make([]*played, 0, n)
	for i := range n {
		home, away := fmt.Sprintf("Home %d", i+1), fmt.Sprintf("Away %d", i+1)
		id, err := c.start(ctx, home, away)
		if err != nil {
			return matches, err
		}
		matches = append(matches, &played{ID: id, HomeTeam: home, AwayTeam: away})
	}
	return matches, nil
}

// playMatches fans matches out to workers. Each match is owned by one worker,
// so its updates stay in order and its scores never decrease.
func playMatches(ctx context.Context, c *client, cfg Config, matches []*played, log logger.Logger) (int, int) {
	var applied, failed atomic.Int64

	work := make(chan *played, cfg.Workers*2)
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range work {
				for range cfg.UpdatesPerMatch {
					if ctx.Err() != nil {
						return
					}
					home := m.HomeScore + rand.IntN(cfg.MaxGoalsPerStep+1)
					away := m.AwayScore + rand.IntN(cfg.MaxGoalsPerStep+1)
					if err := c.updateScore(ctx, m.ID, home, away); err != nil {
						failed.Add(1)
						if cfg.Verbose {
							log.Warn(ctx, "score update failed", logger.String("match", m.ID), logger.Error(err))
						}
						continue
					}
					m.HomeScore, m.AwayScore = home, away
					applied.Add(1)
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for _, m := range matches {
			select {
			case <-ctx.Done():
				return
			case work <- m:
			}
		}
	}()

	wg.Wait()
	return int(applied.Load()), int(failed.Load())
}
