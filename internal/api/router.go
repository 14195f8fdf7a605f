package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/backoffice/docs"
	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/menu"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/session"
)

// AuditQueue accepts session events without blocking the request.
type AuditQueue interface {
	Enqueue(event domain.SessionEvent) bool
}

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Log           zerolog.Logger
	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool
	AssetsDir     string

	Storage    ports.ContextStorage
	Auth       ports.AuthService
	Audit      ports.AuditService
	AuditQueue AuditQueue
	Pages      handler.PageLoader
	Checks     map[string]handler.Check

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry

	// Gate and Menu default to the static route table and menu tree.
	Gate *gatekeeper.Gatekeeper
	Menu *menu.Tree
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	if d.Gate == nil {
		d.Gate = gatekeeper.Default()
	}
	if d.Menu == nil {
		d.Menu = menu.DefaultTree
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "backoffice",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	menus := menu.NewStateStore(d.Storage)
	sessionCfg := middleware.SessionConfig{
		Secret:  d.SessionSecret,
		TTL:     d.SessionTTL,
		Secure:  d.SecureCookies,
		Storage: d.Storage,
		Log:     d.Log,
		OnStore: auditHook(d.AuditQueue, d.Log),
		Carry:   []string{menu.StateKey},
	}
	sessionMW := middleware.Session(sessionCfg)

	authHandler := handler.NewAuthHandler(d.Auth, d.Gate, menus, middleware.RotateContext(sessionCfg), d.Log)
	shellHandler := handler.NewShellHandler(d.Gate, d.Menu, menus, d.Pages, d.Log)
	menuHandler := handler.NewMenuHandler(d.Menu, menus)
	sessionHandler := handler.NewSessionHandler()
	auditHandler := handler.NewAuditHandler(d.Audit)

	// --- Health probes, metrics and docs (no session) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.AssetsDir != "" {
		e.Static("/assets", d.AssetsDir)
	}

	// --- Browser routes ---
	e.POST(gatekeeper.LoginPath, authHandler.Login, sessionMW)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)
	e.POST("/menu/toggle", menuHandler.ToggleForm, sessionMW, middleware.RequireSession())
	e.GET("/*", shellHandler.Serve, sessionMW)

	// --- JSON API ---
	apiGroup := e.Group("/api", sessionMW, middleware.RequireSession())
	apiGroup.GET("/session", sessionHandler.Current)
	apiGroup.GET("/menu", menuHandler.Get)
	apiGroup.POST("/menu/toggle", menuHandler.Toggle)

	adminOnly := middleware.RBAC(domain.RoleAdmin)
	apiGroup.GET("/audit", auditHandler.List, adminOnly)
	apiGroup.POST("/users", authHandler.Register, adminOnly)

	return e
}

// auditHook subscribes every session store to the audit queue so logins
// and logouts are recorded.
func auditHook(q AuditQueue, log zerolog.Logger) func(*session.Store) {
	if q == nil {
		return nil
	}
	return func(s *session.Store) {
		s.Subscribe(func(ch session.Change) {
			ev, ok := session.EventFromChange(ch, time.Now().UTC())
			if !ok {
				return
			}
			if !q.Enqueue(ev) {
				metrics.AuditDroppedTotal.Inc()
				log.Warn().Str("context_id", ev.ContextID).Str("kind", string(ev.Kind)).Msg("session event dropped")
			}
		})
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
