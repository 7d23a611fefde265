package service

import (
	"github.com/acmehq/dashboard-api/internal/lib/cache"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
)

// Services holds all the services used by the application.
type Services struct {
	Dashboard *DashboardService
	Invoices  *InvoiceService
	Customers *CustomerService
}

// NewServices builds the service layer on top of the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	ttl := s.Config.Dashboard.CacheTTL()

	cardCache := cache.NewView[repository.CardData](s.Redis, ttl, s.Logger)
	revenueCache := cache.NewView[[]repository.Revenue](s.Redis, ttl, s.Logger)

	return &Services{
		Dashboard: NewDashboardService(s, repos, cardCache, revenueCache),
		Invoices:  NewInvoiceService(s, repos, cardCache, revenueCache),
		Customers: NewCustomerService(s, repos),
	}
}
