package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bizsites/website-builder/docs"
	"github.com/bizsites/website-builder/internal/api/handler"
	"github.com/bizsites/website-builder/internal/api/middleware"
	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
	"github.com/bizsites/website-builder/internal/core/validation"
	"github.com/bizsites/website-builder/internal/web"
)

const jsonBodyLimit = "1M"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Sites ports.SiteService
	Auth  ports.AuthService
	// Media is nil when no media host is configured.
	Media   ports.MediaService
	Revoker ports.TokenRevoker
	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
	// Registry receives the HTTP metrics. /metrics serves it together with the
	// default registry, where the domain counters live. Nil means the default
	// registry only.
	Registry *prometheus.Registry

	JWTSecret       string
	ExposeEditToken bool
	SecureCookie    bool
	BaseURL         string
	CreateRate      float64
	CreateBurst     int
	MaxUploadBytes  int64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer = d.Registry
		gatherer = prometheus.Gatherers{d.Registry, prometheus.DefaultGatherer}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "website_builder",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(middleware.RequestLogger(d.Logger))

	// --- Dependencies ---
	sites := handler.NewSiteHandler(d.Sites, d.ExposeEditToken)
	pages := handler.NewPageHandler(d.Sites, d.BaseURL)
	auth := handler.NewAuthHandler(d.Auth, d.SecureCookie)
	uploads := handler.NewUploadHandler(d.Media, d.MaxUploadBytes)
	health := handler.NewHealthHandler(d.Health)

	requireSession := middleware.Auth(d.JWTSecret, d.Revoker)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)
	bodyLimit := echomiddleware.BodyLimit(jsonBodyLimit)

	// --- Site API ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/sites", sites.Create, middleware.RateLimit(d.CreateRate, d.CreateBurst), bodyLimit)
	apiGroup.GET("/sites", sites.List, requireSession, requireAdmin)
	apiGroup.GET("/sites/edit/:token", sites.GetByEditToken)
	apiGroup.PATCH("/sites/edit/:token", sites.UpdateByEditToken, bodyLimit)
	apiGroup.GET("/sites/:slug", sites.GetBySlug)
	apiGroup.GET("/sites/:slug/qr.png", pages.QRCode)
	apiGroup.POST("/upload", uploads.Upload, middleware.RateLimit(d.CreateRate, d.CreateBurst))

	// --- Admin session ---
	apiGroup.POST("/login", auth.Login, middleware.RateLimit(d.CreateRate, d.CreateBurst), bodyLimit)
	apiGroup.POST("/logout", auth.Logout, requireSession)
	apiGroup.GET("/user", auth.CurrentUser, requireSession)

	// --- Public pages ---
	e.GET("/sites/:slug", pages.Site)

	// --- Operations (no auth required) ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
