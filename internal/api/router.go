package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storemanager/store-api/docs"
	"github.com/storemanager/store-api/internal/api/handler"
	"github.com/storemanager/store-api/internal/api/metrics"
	"github.com/storemanager/store-api/internal/api/middleware"
	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
	"github.com/storemanager/store-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Checks feed the readiness probe
// and may be nil.
type Deps struct {
	Auth     ports.AuthService
	Tokens   ports.TokenValidator
	Products ports.ProductService
	Sales    ports.SaleService
	Checks   map[string]handlers.Check
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Each router gets its own Prometheus registry.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

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
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "store",
		Subsystem:  "http",
		Registerer: reg,
		Skipper:    skipInstrumentation,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Products)
	saleHandler := handler.NewSaleHandler(d.Sales)
	requireAccess := middleware.Auth(d.Tokens, domain.TokenAccess)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, requireAccess)

	// --- Product routes ---
	products := v1.Group("/products", requireAccess)
	products.POST("", productHandler.Create, middleware.RequireAdmin())
	products.GET("", productHandler.List, middleware.RequireAuthenticated())
	products.GET("/:id", productHandler.Get, middleware.RequireAuthenticated())
	products.PUT("/:id", productHandler.Update, middleware.RequireAdmin())
	products.DELETE("/:id", productHandler.Delete, middleware.RequireAdmin())

	// --- Sale routes ---
	sales := v1.Group("/sales", requireAccess)
	sales.POST("", saleHandler.Create, middleware.RequireAttendant())
	sales.GET("", saleHandler.List, middleware.RequireAdmin())
	sales.GET("/:id", saleHandler.Get, middleware.RequireAttendant())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func skipInstrumentation(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
