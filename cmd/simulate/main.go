package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/fszuberski/scoreboard/internal/simulation"
	"github.com/fszuberski/scoreboard/pkg/logger"
)

const (
	defaultMatches     = 100
	defaultUpdates     = 10
	defaultTimeout     = 10 * time.Second
	defaultRunDeadline = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		matches   = flag.Int("matches", defaultMatches, "Number of matches to start")
		updates   = flag.Int("updates", defaultUpdates, "Score updates per match (negative disables)")
		maxGoals  = flag.Int("max-goals", 2, "Maximum goals added per team by one update")
		workers   = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		finishAll = flag.Bool("finish", false, "Finish every match after verification")
		jsonLogs  = flag.Bool("json", false, "Log as JSON")
		verbose   = flag.Bool("verbose", false, "Log every failed request")
	)
	flag.Parse()

	format := logger.FormatText
	if *jsonLogs {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("simulate")

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunDeadline)
	defer cancel()

	_, err := simulation.Run(ctx, simulation.Config{
		BaseURL:         *baseURL,
		Matches:         *matches,
		UpdatesPerMatch: *updates,
		MaxGoalsPerStep: *maxGoals,
		Workers:         *workers,
		Timeout:         *timeout,
		FinishAll:       *finishAll,
		Verbose:         *verbose,
	}, log)
	if err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
