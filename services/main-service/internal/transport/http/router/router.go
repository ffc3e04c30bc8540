package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/explore-with-me/services/main-service/internal/config"
	"github.com/baechuer/explore-with-me/services/main-service/internal/metrics"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/handlers"
	mw "github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/middleware"
)

type Handlers struct {
	Events   *handlers.EventsHandler
	Requests *handlers.RequestsHandler
	Comments *handlers.CommentsHandler
	Catalog  *handlers.CatalogHandler
	Health   *handlers.HealthHandler
}

// New builds the HTTP surface. limiter and admin are optional: a nil limiter
// falls back to the in-process httprate limiter, a nil admin leaves /admin open.
func New(h Handlers, cfg *config.Config, limiter mw.Limiter, admin *mw.AdminAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.AccessLog)
	r.Use(metrics.HTTP)

	r.Get("/healthz", h.Health.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RLEnabled {
			if limiter != nil {
				r.Use(mw.RateLimit(limiter, cfg.RLLimit, cfg.RLWindow))
			} else {
				r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
			}
		}

		// public
		r.Get("/events", h.Events.Search)
		r.Get("/events/{id}", h.Events.GetPublic)
		r.Get("/events/{id}/comments", h.Comments.ListByEvent)
		r.Get("/comments/{id}", h.Comments.Get)
		r.Get("/categories", h.Catalog.ListCategories)
		r.Get("/categories/{id}", h.Catalog.GetCategory)
		r.Get("/compilations", h.Catalog.ListCompilations)
		r.Get("/compilations/{id}", h.Catalog.GetCompilation)

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/events", h.Events.ListMine)
			r.Post("/events", h.Events.Create)
			r.Get("/events/{eventId}", h.Events.GetMine)
			r.Patch("/events/{eventId}", h.Events.UpdateMine)
			r.Get("/events/{eventId}/requests", h.Requests.ListForEvent)
			r.Patch("/events/{eventId}/requests", h.Requests.ChangeStatus)
			r.Post("/events/{eventId}/comments", h.Comments.Add)

			r.Get("/requests", h.Requests.ListMine)
			r.Post("/requests", h.Requests.Add)
			r.Patch("/requests/{requestId}/cancel", h.Requests.Cancel)

			r.Patch("/comments/{commentId}", h.Comments.Update)
			r.Delete("/comments/{commentId}", h.Comments.Delete)
		})

		r.Route("/admin", func(r chi.Router) {
			if admin != nil {
				r.Use(admin.Require)
			}
			r.Get("/users", h.Catalog.ListUsers)
			r.Post("/users", h.Catalog.CreateUser)
			r.Delete("/users/{id}", h.Catalog.DeleteUser)

			r.Post("/categories", h.Catalog.CreateCategory)
			r.Patch("/categories/{id}", h.Catalog.UpdateCategory)
			r.Delete("/categories/{id}", h.Catalog.DeleteCategory)

			r.Get("/events", h.Events.AdminSearch)
			r.Patch("/events/{id}", h.Events.AdminUpdate)

			r.Post("/compilations", h.Catalog.CreateCompilation)
			r.Patch("/compilations/{id}", h.Catalog.UpdateCompilation)
			r.Delete("/compilations/{id}", h.Catalog.DeleteCompilation)

			r.Delete("/comments/{id}", h.Comments.AdminDelete)
		})
	})

	return r
}
