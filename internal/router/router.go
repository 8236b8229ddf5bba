package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"auth-system/internal/config"
	"auth-system/internal/handler"
	"auth-system/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Docs   *handler.DocsHandler
	Health *handler.HealthHandler
}

// Observability is nil when METRICS_ENABLED=false.
type Observability interface {
	ObserveRequest(method string, route string, status string, seconds float64)
	Handler() http.Handler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, obs Observability) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	if obs != nil {
		r.Use(middleware.Metrics(obs))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, r, errNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, r, errMethodNotAllowed)
	})

	r.Get("/health", h.Health.Health)
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)
	if obs != nil {
		r.Handle("/metrics", obs.Handler())
	}

	r.Route(cfg.APIPrefix, func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/user", h.Auth.User)
		})
	})

	return r
}
