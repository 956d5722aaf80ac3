package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/XploitFox/private-navigation-system/docs"
	"github.com/XploitFox/private-navigation-system/internal/api/handler"
	"github.com/XploitFox/private-navigation-system/internal/api/middleware"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

const metricsSubsystem = "http"

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth        ports.AuthService
	Tokens      ports.AccessTokenVerifier
	Navigations ports.NavigationService
	Store       handler.Pinger
	Backend     string

	Log            zerolog.Logger
	CookieName     string
	SecureCookies  bool
	Production     bool
	AllowedOrigins []string
	// StaticDir holds the built single page app. Ignored when it has no index.html.
	StaticDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.Secure())
	if len(d.AllowedOrigins) > 0 || !d.Production {
		e.Use(echomiddleware.CORSWithConfig(corsConfig(d.AllowedOrigins)))
	}
	e.Use(echomiddleware.BodyLimit("1M"))

	// HTTP metrics live in a registry per router; the domain counters stay on
	// the default registry and both are exposed on /metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, handler.CookieConfig{
		Name:   d.CookieName,
		Secure: d.SecureCookies,
	})
	navHandler := handler.NewNavigationHandler(d.Navigations)
	healthHandler := handler.NewHealthHandler(d.Backend, d.Store)
	requireAuth := middleware.Auth(d.Tokens)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Navigation routes ---
	nav := api.Group("/navigations", requireAuth)
	nav.GET("", navHandler.List)
	nav.POST("", navHandler.Save)

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{httpMetrics, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if hasIndex(d.StaticDir) {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:       ".",
			Filesystem: http.Dir(d.StaticDir),
			Index:      "index.html",
			HTML5:      true,
			Skipper:    skipNonSPA,
		}))
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("remote_ip", v.RemoteIP).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// corsConfig allows the listed origins, or reflects any origin when none are
// configured. Production without a list gets no CORS middleware at all.
func corsConfig(origins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
		return cfg
	}
	cfg.AllowOriginFunc = func(string) (bool, error) { return true, nil }
	return cfg
}

func skipNonSPA(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/api/") || p == "/api" ||
		p == "/metrics" || strings.HasPrefix(p, "/swagger/")
}

func hasIndex(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	return err == nil && !info.IsDir()
}
