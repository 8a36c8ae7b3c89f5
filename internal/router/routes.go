package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-routes/api/internal/auth"
	"github.com/octobees/sales-routes/api/internal/config"
	"github.com/octobees/sales-routes/api/internal/handler"
	middlewarepkg "github.com/octobees/sales-routes/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Registry *handler.RegistryHandler
	Audit    *handler.AuditHandler
	Settings *handler.SettingsHandler
	Metrics  http.Handler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	lookupLimiter := middlewarepkg.RouteRateLimiter(cfg.Registry.RateLimitLookup)
	e.GET("/cnpj/:id", handlers.Registry.Resolve, lookupLimiter)
	e.GET("/cnpj", handlers.Registry.Search, lookupLimiter)

	e.POST("/logs", handlers.Audit.Create, middlewarepkg.OptionalJWT(jwtManager))

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))
	secured.GET("/logs", handlers.Audit.List, middlewarepkg.RequireRole("admin"))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/settings/cnpja-key", handlers.Settings.CNPJAKeyStatus)
	admin.PUT("/settings/cnpja-key", handlers.Settings.UpdateCNPJAKey)
}
