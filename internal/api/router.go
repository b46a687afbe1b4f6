// Package api wires the HTTP surface: routing, middleware pipeline and the
// uniform response envelope.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitstop-labs/pitstop/internal/api/handler"
	"github.com/pitstop-labs/pitstop/internal/api/middleware"
	"github.com/pitstop-labs/pitstop/internal/api/response"
	"github.com/pitstop-labs/pitstop/internal/car"
	"github.com/pitstop-labs/pitstop/internal/identity"
	"github.com/pitstop-labs/pitstop/internal/token"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Tokens     *token.Service
	Provider   identity.Provider
	Cars       car.Repository
	DBPinger   handler.DBPinger
	BasePath   string
	PublicURL  string
	Version    string
	Production bool

	// RateLimiter is optional; nil disables rate limiting (tests).
	RateLimiter *middleware.RateLimiter

	// Registry is optional; nil disables the metrics endpoint (tests).
	Registry *prometheus.Registry
}

// NewRouter creates and configures a chi router with all middleware and
// routes. Every handler reached through it answers with the envelope.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Production))
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}
	if deps.Registry != nil {
		metrics := middleware.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Err(w, http.StatusNotFound, response.CodeNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Err(w, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "Method not allowed")
	})

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	rootHandler := handler.NewRootHandler(deps.PublicURL, deps.BasePath, deps.Version)
	authHandler := handler.NewAuthHandler(deps.Provider, deps.Tokens)
	meHandler := handler.NewMeHandler(deps.Provider)
	carHandler := handler.NewCarHandler(deps.Cars)

	r.Route(deps.BasePath, func(r chi.Router) {
		r.Get("/", rootHandler.Get)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens))

			r.Get("/me", meHandler.Get)

			r.Route("/cars", func(r chi.Router) {
				r.Get("/", carHandler.List)
				r.Post("/", carHandler.Create)
				r.Get("/{id}", carHandler.GetByID)
				r.Put("/{id}", carHandler.Update)
				r.Delete("/{id}", carHandler.Delete)
			})
		})
	})

	return r
}
