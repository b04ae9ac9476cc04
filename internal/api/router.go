package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/donatehub/donatehub-client/docs"
	"github.com/donatehub/donatehub-client/internal/api/handler"
	"github.com/donatehub/donatehub-client/internal/api/middleware"
	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
	"github.com/donatehub/donatehub-client/internal/pkg/validation"
)

// Deps are the services the companion server exposes.
type Deps struct {
	Sessions   ports.SessionService
	Dashboards ports.DashboardService
	// Checks are pinged by the readiness endpoint, keyed by dependency name.
	Checks map[string]ports.Pinger
	// Registry receives the HTTP metrics and backs /metrics. Nil uses the
	// prometheus default registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(d.Registry)))

	sessionHandler := handler.NewSessionHandler(d.Sessions)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboards)
	campaignHandler := handler.NewCampaignHandler(d.Dashboards)
	healthHandler := handler.NewHealthHandler(d.Sessions, d.Checks)

	// --- Session ---
	e.GET("/session", sessionHandler.Get)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)
	e.POST("/session/logout", sessionHandler.Logout)

	// --- Public campaigns ---
	e.GET("/campaigns", campaignHandler.List)
	e.GET("/campaigns/:id", campaignHandler.Get)

	// --- Signed in ---
	signedIn := middleware.RequireSession(d.Sessions)
	donor := middleware.RequireRole(domain.RoleDonor)
	ngo := middleware.RequireRole(domain.RoleNGO)

	e.GET("/dashboard", dashboardHandler.Get, signedIn)
	e.POST("/campaigns/:id/donations", campaignHandler.Donate, signedIn, donor)
	e.POST("/campaigns", campaignHandler.Create, signedIn, ngo)
	e.PUT("/campaigns/:id/status", campaignHandler.SetStatus, signedIn, ngo)
	e.DELETE("/campaigns/:id", campaignHandler.Delete, signedIn, ngo)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "donatehub_client"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
