package router

import (
	"github.com/acmehq/dashboard-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business
// logic: the health endpoint, the docs UI, and the static assets the
// docs UI loads.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)

	e.Static("/static", "static")

	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
