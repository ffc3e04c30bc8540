package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/application/catalog"
	"github.com/baechuer/explore-with-me/services/main-service/internal/application/comment"
	"github.com/baechuer/explore-with-me/services/main-service/internal/application/event"
	"github.com/baechuer/explore-with-me/services/main-service/internal/application/participation"
	"github.com/baechuer/explore-with-me/services/main-service/internal/config"
	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/explore-with-me/services/main-service/internal/infrastructure/memory"
	"github.com/baechuer/explore-with-me/services/main-service/internal/infrastructure/redis"
	"github.com/baechuer/explore-with-me/services/main-service/internal/infrastructure/statsclient"
	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/handlers"
	mw "github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/middleware"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/router"
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// store is satisfied by both the postgres repo and the in-memory store.
type store interface {
	domain.UserRepo
	domain.CategoryRepo
	domain.EventRepo
	domain.RequestRepo
	domain.CommentRepo
	domain.CompilationRepo
	domain.TxRunner
}

type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Redis  *redis.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var db *sql.DB
	if !cfg.InMemory() {
		db = openDB(cfg)
		defer db.Close()
	} else {
		zlog.Warn().Msg("DATABASE_URL empty: running on the in-memory store")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.New(cfg.RedisURL)
		if err != nil {
			// the in-process limiter takes over
			zlog.Warn().Err(err).Msg("redis unavailable, using local rate limiter")
		} else {
			defer rdb.Close()
		}
	}

	app := NewApp(cfg, db, rdb)

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openDB(cfg *config.Config) *sql.DB {
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	if cfg.MigrationsEnabled {
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			zlog.Fatal().Err(err).Msg("migrations failed")
		}
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("db ping failed")
	}
	return db
}

// NewApp wires the service. db and rdb may be nil.
func NewApp(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	// 1) Infrastructure
	deps := map[string]handlers.Pinger{}
	var repo store
	if db != nil {
		repo = postgres.New(db)
		deps["postgres"] = db
	} else {
		repo = memory.New()
	}

	var limiter mw.Limiter
	if rdb != nil {
		limiter = rdb
		deps["redis"] = handlers.PingFunc(rdb.Ping)
	}

	var stats event.StatsClient = event.NoopStats{}
	if cfg.StatsURL != "" {
		stats = statsclient.New(cfg.StatsURL, cfg.StatsApp, cfg.StatsTimeout)
	}

	// 2) Application
	clock := sysClock{}
	events := event.New(repo, repo, repo, repo, stats, clock)
	requests := participation.New(repo, repo, repo, repo, clock)
	comments := comment.New(repo, repo, repo, clock)
	cat := catalog.New(repo, repo, repo, repo)

	// 3) Transport
	var admin *mw.AdminAuth
	if cfg.AdminJWTSecret != "" {
		admin = mw.NewAdminAuth(cfg.AdminJWTSecret, cfg.AdminJWTIssuer)
	} else {
		zlog.Warn().Msg("ADMIN_JWT_SECRET empty: /admin is unprotected")
	}

	httpHandler := router.New(router.Handlers{
		Events:   handlers.NewEventsHandler(events),
		Requests: handlers.NewRequestsHandler(requests),
		Comments: handlers.NewCommentsHandler(comments),
		Catalog:  handlers.NewCatalogHandler(cat),
		Health:   handlers.NewHealthHandler(deps),
	}, cfg, limiter, admin)

	// 4) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{Config: cfg, Server: srv, DB: db, Redis: rdb}
}
