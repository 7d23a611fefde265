package service

import (
	"context"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/rs/zerolog"
)

type customerStore interface {
	List(ctx context.Context) ([]repository.CustomerField, error)
	Filtered(ctx context.Context, query string) ([]repository.CustomerRow, error)
}

// CustomerService serves customer reads: the id/name list used by the
// invoice form dropdown and the aggregated customers table.
type CustomerService struct {
	customers customerStore
	log       *zerolog.Logger
}

func NewCustomerService(s *server.Server, repos *repository.Repositories) *CustomerService {
	return &CustomerService{
		customers: repos.Customers,
		log:       s.Logger,
	}
}

// List returns all customers as id/name pairs, ordered by name.
func (s *CustomerService) List(ctx context.Context) ([]repository.CustomerField, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch customers")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch all customers.")
	}

	return customers, nil
}

// Table returns the aggregated customers table filtered by the search
// term, with per-customer invoice counts and paid/pending totals.
func (s *CustomerService) Table(ctx context.Context, query string) ([]repository.CustomerRow, error) {
	customers, err := s.customers.Filtered(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to fetch customer table")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch customer table.")
	}

	return customers, nil
}
