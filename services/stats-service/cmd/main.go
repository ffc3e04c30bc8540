package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/stats-service/internal/api"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/api/handlers"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/config"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/infrastructure/postgres"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/logger"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/middleware"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.MigrationsEnabled {
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			zlog.Fatal().Err(err).Msg("migrations failed")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	repo := postgres.NewHitRepo(pool)
	hits := handlers.NewHitsHandler(repo)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerIP > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerIP, time.Minute)
		go runSweeper(limiter)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(hits, repo, limiter),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("stats-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown error")
	}
}

// runSweeper drops idle limiter buckets every few minutes.
func runSweeper(rl *middleware.RateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.Sweep()
	}
}
