package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/labstack/echo/v4"
)

type mockDashboardService struct {
	cards    *repository.CardData
	revenue  []repository.Revenue
	invoices []repository.LatestInvoice
	err      error
}

func (m *mockDashboardService) CardData(_ context.Context) (*repository.CardData, error) {
	return m.cards, m.err
}

func (m *mockDashboardService) Revenue(_ context.Context) ([]repository.Revenue, error) {
	return m.revenue, m.err
}

func (m *mockDashboardService) LatestInvoices(_ context.Context) ([]repository.LatestInvoice, error) {
	return m.invoices, m.err
}

func newDashboardTestServer(svc dashboardService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(nil).GlobalErrorHandler

	h := &DashboardHandler{dashboard: svc}
	e.GET("/api/v1/dashboard/cards", Handle[EmptyRequest](h.Handler, h.Cards, http.StatusOK))
	e.GET("/api/v1/dashboard/revenue", Handle[EmptyRequest](h.Handler, h.Revenue, http.StatusOK))
	e.GET("/api/v1/dashboard/latest-invoices", Handle[EmptyRequest](h.Handler, h.LatestInvoices, http.StatusOK))

	return e
}

func TestDashboardCards(t *testing.T) {
	svc := &mockDashboardService{
		cards: &repository.CardData{
			InvoiceCount:  13,
			CustomerCount: 6,
			TotalPaid:     "$1,050.00",
			TotalPending:  "$320.50",
		},
	}
	e := newDashboardTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cards", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"invoice_count":13`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"$1,050.00"`) {
		t.Errorf("expected formatted total in body: %s", rec.Body.String())
	}
}

func TestDashboardRevenueServiceError(t *testing.T) {
	svc := &mockDashboardService{
		err: errs.NewInternalServerError().WithMessage("Failed to fetch revenue data."),
	}
	e := newDashboardTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/revenue", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Failed to fetch revenue data.") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestDashboardLatestInvoices(t *testing.T) {
	svc := &mockDashboardService{
		invoices: []repository.LatestInvoice{
			{ID: "a", Name: "Ada Lovelace", Email: "ada@example.com", Amount: "$12.00"},
		},
	}
	e := newDashboardTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/latest-invoices", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
