package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tinymarket/market/internal/api/handler"
	"github.com/tinymarket/market/internal/api/metrics"
	"github.com/tinymarket/market/internal/api/middleware"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/ports"
	"github.com/tinymarket/market/internal/core/service"
	"github.com/tinymarket/market/internal/infrastructure/db/sqlite"
	infrahttp "github.com/tinymarket/market/internal/infrastructure/http"
	"github.com/tinymarket/market/internal/session"
)

const (
	csrfField  = "csrf_token"
	csrfCookie = "_csrf"
	loginPath  = "/login"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	DB       *sql.DB
	Redis    *redis.Client      // optional; only probed by /health/ready
	Limiter  ports.LoginLimiter // optional; nil disables login throttling
	Sessions *session.Manager
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = view.MustNew()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "market",
		Registerer: reg,
		Skipper:    skipInfra,
	}))
	e.Use(middleware.Session(d.Sessions, d.Log))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper:        skipInfra,
		TokenLookup:    "form:" + csrfField,
		CookieName:     csrfCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(d.DB)
	productRepo := sqlite.NewProductRepository(d.DB)
	reportRepo := sqlite.NewReportRepository(d.DB)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, d.Limiter, d.Log))
	productHandler := handler.NewProductHandler(service.NewProductService(productRepo, d.Log))
	profileHandler := handler.NewProfileHandler(service.NewProfileService(userRepo))
	reportHandler := handler.NewReportHandler(service.NewReportService(reportRepo, d.Log))

	// --- Public pages ---
	e.GET("/", handler.Index)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/search", productHandler.Search)

	// --- Pages behind a session ---
	requireLogin := middleware.RequireLogin(loginPath)
	e.GET("/products", productHandler.List, requireLogin)
	e.GET("/product/new", productHandler.NewForm, requireLogin)
	e.POST("/product/new", productHandler.Create, requireLogin)
	e.GET("/profile", profileHandler.Show, requireLogin)
	e.POST("/profile", profileHandler.Update, requireLogin)
	e.GET("/report", reportHandler.Form, requireLogin)
	e.POST("/report", reportHandler.Submit, requireLogin)

	// --- Operations ---
	infrahttp.RegisterHealth(e, d.DB, d.Redis)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	return e, nil
}

func skipInfra(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}
