package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/http/features/orgs"
	"github.com/taskhive/taskhive/internal/http/features/session"
	"github.com/taskhive/taskhive/internal/http/features/tasks"
	"github.com/taskhive/taskhive/internal/http/features/users"
	"github.com/taskhive/taskhive/internal/http/middleware"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/repository"
	"github.com/taskhive/taskhive/pkg/task"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger          *slog.Logger
	TokenService    *auth.TokenService
	IdentityService *auth.IdentityService
	LoginService    *auth.LoginService
	TaskService     *task.Service
	UsersRepo       *repository.UsersRepository
	RateLimit       config.RateLimitConfig
	SecurityHeaders config.SecurityHeadersConfig
	MaxBodySize     int64
}

// NewRouter creates the HTTP router. Every data route sits inside the
// authenticated group: the authentication gate is part of the route
// structure, so no handler that needs a tenant context can be mounted
// without it.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxBodySize))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login (unauthenticated, rate limited)
	sessionHandler := session.NewHandler(cfg.Logger, cfg.LoginService, cfg.TokenService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit(cfg.RateLimit, cfg.Logger))
		r.Post("/v1/auth/login", sessionHandler.Login)
	})

	// Authenticated routes
	taskHandler := tasks.NewHandler(cfg.Logger, cfg.TaskService)
	userHandler := users.NewHandler(cfg.Logger, cfg.UsersRepo)
	orgHandler := orgs.NewHandler()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenService, cfg.IdentityService, cfg.Logger))

		r.Get("/v1/tasks", taskHandler.List)
		r.Post("/v1/tasks", taskHandler.Create)
		r.Get("/v1/tasks/{taskID}", taskHandler.Get)
		r.Put("/v1/tasks/{taskID}", taskHandler.Update)
		r.Delete("/v1/tasks/{taskID}", taskHandler.Delete)

		r.Get("/v1/users", userHandler.List)
		r.Post("/v1/users", userHandler.Create)

		r.Get("/v1/organization", orgHandler.GetCurrent)
	})

	return r
}
