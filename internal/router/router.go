// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/acmehq/dashboard-api/internal/handler"
	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance: global middleware first (outermost to
// innermost), then the error funnel, then the route groups.
func New(mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.CORS())
	e.Use(middleware.RequestID())
	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.Global.RequestLogger())

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, mw, h)

	return e
}
