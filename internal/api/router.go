package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/openaero/platform/internal/api/handler"
	"github.com/openaero/platform/internal/api/middleware"
	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
	"github.com/openaero/platform/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Log zerolog.Logger

	Gate     *auth.Gate
	Cron     *auth.CronAuthenticator
	Sessions auth.SessionExchanger
	Cookie   handler.CookieSettings

	// Per-IP limit on session routes. Zero disables it.
	AuthRateLimit float64
	AuthRateBurst int

	Profiles  ports.ProfileService
	Creators  ports.CreatorService
	Solutions ports.SolutionService
	Admin     ports.AdminService
	Sync      ports.SyncService

	// Readiness checks keyed by dependency name.
	Checks map[string]handlers.Check

	// HTTP metrics and /metrics are enabled only when both are set.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))

	if deps.MetricsRegisterer != nil && deps.MetricsGatherer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "openaero",
			Registerer: deps.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.MetricsGatherer,
		}))
	}

	// --- Ops (no auth required) ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: mongo + redis

	// --- Session ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Cookie)
	session := e.Group("/auth")
	if deps.AuthRateLimit > 0 && deps.AuthRateBurst > 0 {
		session.Use(middleware.RateLimit(deps.AuthRateLimit, deps.AuthRateBurst))
	}
	session.GET("/callback", authHandler.Callback)
	session.POST("/logout", authHandler.Logout)

	// --- API ---
	requireAnyone := middleware.RequireRole(deps.Gate, domain.RoleAnonymous)
	requireUser := middleware.RequireRole(deps.Gate, domain.RoleUser)
	requireCreator := middleware.RequireRole(deps.Gate, domain.RoleCreator)
	requireAdmin := middleware.RequireRole(deps.Gate, domain.RoleAdmin)

	apiGroup := e.Group("/api")

	solutionHandler := handler.NewSolutionHandler(deps.Solutions)
	apiGroup.GET("/solutions", solutionHandler.List, requireAnyone)

	userHandler := handler.NewUserHandler(deps.Profiles)
	apiGroup.GET("/users/me", userHandler.Me, requireUser)

	creatorHandler := handler.NewCreatorHandler(deps.Creators)
	creators := apiGroup.Group("/creators")
	creators.POST("/apply", creatorHandler.Apply, requireUser)
	creators.GET("/me/solutions", creatorHandler.MySolutions, requireCreator)

	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Creators)
	admin := apiGroup.Group("/admin", requireAdmin)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/creator-applications", adminHandler.ListApplications)
	admin.POST("/creator-applications/:id/approve", adminHandler.Approve)

	cronHandler := handler.NewCronHandler(deps.Sync)
	cron := apiGroup.Group("/cron", middleware.RequireCron(deps.Cron))
	cron.GET("/sync", cronHandler.Sync)
	cron.POST("/sync", cronHandler.Sync)

	return e
}
