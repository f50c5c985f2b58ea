package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fszuberski/scoreboard/internal/adapters/http/api"
	"github.com/fszuberski/scoreboard/internal/adapters/http/swagger"
	"github.com/fszuberski/scoreboard/internal/adapters/repository"
	service "github.com/fszuberski/scoreboard/internal/app"
	"github.com/fszuberski/scoreboard/internal/config"
	"github.com/fszuberski/scoreboard/pkg/logger"
	"github.com/fszuberski/scoreboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if cfg.LogFormat == string(logger.FormatJSON) {
		_ = logger.Init(logger.WithFormat(logger.FormatJSON))
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open match store", logger.String("store", cfg.Store), logger.Error(err))
		return
	}
	defer func() {
		if c, ok := store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Error(ctx, "failed to close match store", logger.Error(err))
			}
		}
	}()

	board, err := service.NewWithStore(store, service.WithLogger(log.Named("scoreboard")))
	if err != nil {
		log.Error(ctx, "failed to create scoreboard", logger.Error(err))
		return
	}

	interval := time.Duration(cfg.MetricsIntervalMS) * time.Millisecond
	go startSystemMetricsUpdater(ctx, interval)
	go startServiceMetricsUpdater(ctx, interval, board)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(board),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutMS)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newStore builds the configured match store backend.
func newStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreRedis:
		rc := repository.DefaultRedisConfig()
		rc.Addr = cfg.RedisAddr
		rc.Password = cfg.RedisPassword
		rc.DB = cfg.RedisDB
		if cfg.RedisKeyPrefix != "" {
			rc.KeyPrefix = cfg.RedisKeyPrefix
		}
		s, err := repository.NewRedisStore(ctx, rc)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s := repository.NewMemoryStore(
			repository.WithMetricsUpdateInterval(time.Duration(cfg.MetricsIntervalMS) * time.Millisecond),
		)
		s.StartMetricsUpdater(ctx)
		return s, nil
	}
}

// newMux registers the API and docs routes.
func newMux(board api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(mux)
	api.NewServer(board).Register(mux)
	return mux
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes the ongoing matches gauge until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, interval time.Duration, board *service.Scoreboard) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, board)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics reads the board, which publishes the ongoing gauge.
func updateServiceMetrics(ctx context.Context, board *service.Scoreboard) {
	_, _ = board.OngoingMatches(ctx)
}
