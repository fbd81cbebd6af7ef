package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

var (
	flagListen      string
	flagOrigins     []string
	flagSubmitRate  float64
	flagSubmitBurst int
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP high-score server",
	Long: `Serve the high-score record over HTTP.

Endpoints:
  GET  /highscore   - Current record as {"name": "...", "score": N}
  POST /highscore   - Submit {"name": "...", "score": N}
  GET  /health      - Liveness check
  GET  /metrics     - Prometheus metrics

The record lives in the local database unless --redis is given.

Examples:
  snake api
  snake api --listen :9000 --origin https://example.com
  snake api --redis redis://localhost:6379/0`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	flags := apiCmd.Flags()
	flags.StringVar(&flagListen, "listen", server.DefaultConfig().Addr, "HTTP listen address")
	flags.StringSliceVar(&flagOrigins, "origin", nil, "Allowed CORS origins (default: any)")
	flags.Float64Var(&flagSubmitRate, "submit-rate", float64(server.DefaultConfig().SubmitRate), "Score submissions allowed per second (0 = unlimited)")
	flags.IntVar(&flagSubmitBurst, "submit-burst", server.DefaultConfig().SubmitBurst, "Submissions allowed in a burst")
	flags.StringVar(&flagRedisURL, "redis", "", "Keep the record in Redis (redis://host:port/db)")
	flags.StringVar(&flagRedisKey, "redis-key", highscore.DefaultRedisKey, "Redis key holding the record")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := newLogger("snake-api")

	keeper, _, cleanup, err := sharedKeeper(logger)
	exitOnError("opening high-score store", err)
	defer cleanup()

	cfg := server.DefaultConfig()
	cfg.Addr = flagListen
	cfg.AllowedOrigins = flagOrigins
	cfg.SubmitRate = rate.Limit(flagSubmitRate)
	cfg.SubmitBurst = flagSubmitBurst

	srv := server.New(cfg, keeper, logger)
	if _, err := srv.Start(); err != nil {
		cleanup()
		exitOnError("starting server", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
