package handler

import (
	"context"

	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomerTableRequest carries the optional search term for the
// customers table.
type CustomerTableRequest struct {
	Query string `query:"query"`
}

func (r *CustomerTableRequest) Validate() error {
	return validator.New().Struct(r)
}

type customerService interface {
	List(ctx context.Context) ([]repository.CustomerField, error)
	Table(ctx context.Context, query string) ([]repository.CustomerRow, error)
}

// CustomerHandler serves customer reads.
type CustomerHandler struct {
	Handler
	customers customerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

// List returns all customers as id/name pairs for select inputs.
func (h *CustomerHandler) List(c echo.Context, _ *EmptyRequest) ([]repository.CustomerField, error) {
	return h.customers.List(c.Request().Context())
}

// Table returns the aggregated customers table filtered by the search
// term.
func (h *CustomerHandler) Table(c echo.Context, req *CustomerTableRequest) ([]repository.CustomerRow, error) {
	return h.customers.Table(c.Request().Context(), req.Query)
}
