package handler

import (
	"context"
	"time"

	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/service"
	"github.com/labstack/echo/v4"
)

// EmptyRequest is the payload for endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type dashboardService interface {
	CardData(ctx context.Context) (*repository.CardData, error)
	Revenue(ctx context.Context) ([]repository.Revenue, error)
	LatestInvoices(ctx context.Context) ([]repository.LatestInvoice, error)
}

// DashboardHandler serves the overview page read models.
type DashboardHandler struct {
	Handler
	dashboard dashboardService
	telemetry *middleware.QueryTelemetry
}

func NewDashboardHandler(s *server.Server, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		Handler:   NewHandler(s),
		dashboard: dashboard,
		telemetry: middleware.NewQueryTelemetry(s),
	}
}

// Cards returns the four summary card values.
func (h *DashboardHandler) Cards(c echo.Context, _ *EmptyRequest) (*repository.CardData, error) {
	return timed(c, h.telemetry, "dashboard_cards", h.dashboard.CardData)
}

// Revenue returns the monthly revenue series.
func (h *DashboardHandler) Revenue(c echo.Context, _ *EmptyRequest) ([]repository.Revenue, error) {
	return timed(c, h.telemetry, "dashboard_revenue", h.dashboard.Revenue)
}

// LatestInvoices returns the most recent invoices.
func (h *DashboardHandler) LatestInvoices(c echo.Context, _ *EmptyRequest) ([]repository.LatestInvoice, error) {
	return timed(c, h.telemetry, "dashboard_latest_invoices", h.dashboard.LatestInvoices)
}

// timed runs a read operation and reports it to the slow-query
// telemetry when it exceeds the configured threshold.
func timed[T any](c echo.Context, telemetry *middleware.QueryTelemetry, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := fn(c.Request().Context())
	telemetry.RecordSlowQuery(operation, time.Since(start))
	return result, err
}
