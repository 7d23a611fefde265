package handler

import (
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Dashboard *DashboardHandler
	Invoices  *InvoiceHandler
	Customers *CustomerHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Dashboard: NewDashboardHandler(s, services.Dashboard),
		Invoices:  NewInvoiceHandler(s, services.Invoices),
		Customers: NewCustomerHandler(s, services.Customers),
	}
}
