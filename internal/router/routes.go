package router

import (
	"net/http"

	"github.com/acmehq/dashboard-api/internal/handler"
	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes registers the business routes under /api/v1. All of
// them require an authenticated session.
func registerAPIRoutes(e *echo.Echo, mw *middleware.Middlewares, h *handler.Handlers) {
	api := e.Group("/api/v1", mw.Auth.RequireAuth)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/cards", handler.Handle[handler.EmptyRequest](h.Dashboard.Handler, h.Dashboard.Cards, http.StatusOK))
	dashboard.GET("/revenue", handler.Handle[handler.EmptyRequest](h.Dashboard.Handler, h.Dashboard.Revenue, http.StatusOK))
	dashboard.GET("/latest-invoices", handler.Handle[handler.EmptyRequest](h.Dashboard.Handler, h.Dashboard.LatestInvoices, http.StatusOK))

	invoices := api.Group("/invoices")
	invoices.GET("", handler.Handle[handler.ListInvoicesRequest](h.Invoices.Handler, h.Invoices.List, http.StatusOK))
	invoices.POST("", handler.Handle[handler.CreateInvoiceRequest](h.Invoices.Handler, h.Invoices.Create, http.StatusCreated))
	invoices.GET("/:id", handler.Handle[handler.InvoiceIDRequest](h.Invoices.Handler, h.Invoices.GetByID, http.StatusOK))
	invoices.PUT("/:id", handler.HandleNoContent[handler.UpdateInvoiceRequest](h.Invoices.Handler, h.Invoices.Update, http.StatusNoContent))
	invoices.DELETE("/:id", handler.HandleNoContent[handler.InvoiceIDRequest](h.Invoices.Handler, h.Invoices.Delete, http.StatusNoContent))
	invoices.GET("/:id/pdf", handler.HandleFile[handler.InvoiceIDRequest](h.Invoices.Handler, h.Invoices.ExportPDF, http.StatusOK))
	invoices.POST("/:id/reminder", handler.HandleNoContent[handler.InvoiceIDRequest](h.Invoices.Handler, h.Invoices.SendReminder, http.StatusAccepted))

	customers := api.Group("/customers")
	customers.GET("", handler.Handle[handler.EmptyRequest](h.Customers.Handler, h.Customers.List, http.StatusOK))
	customers.GET("/table", handler.Handle[handler.CustomerTableRequest](h.Customers.Handler, h.Customers.Table, http.StatusOK))
}
