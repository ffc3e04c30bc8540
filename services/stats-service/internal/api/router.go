package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baechuer/explore-with-me/services/stats-service/internal/api/handlers"
	"github.com/baechuer/explore-with-me/services/stats-service/internal/middleware"
)

// Pinger backs /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the routes. A nil limiter disables rate limiting on /hit.
func NewRouter(hits *handlers.HitsHandler, db Pinger, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if limiter != nil {
		r.With(middleware.RateLimit(limiter)).Post("/hit", hits.Hit)
	} else {
		r.Post("/hit", hits.Hit)
	}
	r.Get("/stats", hits.Stats)

	return r
}
