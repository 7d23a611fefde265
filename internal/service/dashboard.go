package service

import (
	"context"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/lib/cache"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/rs/zerolog"
)

// latestInvoicesLimit caps the dashboard's latest-invoices panel.
const latestInvoicesLimit = 5

type cardStore interface {
	CardData(ctx context.Context) (*repository.CardData, error)
}

type revenueStore interface {
	List(ctx context.Context) ([]repository.Revenue, error)
}

type latestInvoiceStore interface {
	Latest(ctx context.Context, limit int) ([]repository.LatestInvoice, error)
}

// DashboardService serves the overview page read models: summary cards,
// the revenue chart series, and the latest invoices. Cards and revenue
// are cached in Redis; a cache failure falls back to the database.
type DashboardService struct {
	cards    cardStore
	revenue  revenueStore
	invoices latestInvoiceStore

	cardCache    *cache.View[repository.CardData]
	revenueCache *cache.View[[]repository.Revenue]

	log *zerolog.Logger
}

func NewDashboardService(
	s *server.Server,
	repos *repository.Repositories,
	cardCache *cache.View[repository.CardData],
	revenueCache *cache.View[[]repository.Revenue],
) *DashboardService {
	return &DashboardService{
		cards:        repos.Dashboard,
		revenue:      repos.Revenue,
		invoices:     repos.Invoices,
		cardCache:    cardCache,
		revenueCache: revenueCache,
		log:          s.Logger,
	}
}

// CardData returns the four summary card values.
func (s *DashboardService) CardData(ctx context.Context) (*repository.CardData, error) {
	if cached, ok := s.cardCache.Get(ctx, cache.KeyCardData); ok {
		return cached, nil
	}

	data, err := s.cards.CardData(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch card data")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch card data.")
	}

	s.cardCache.Set(ctx, cache.KeyCardData, data)

	return data, nil
}

// Revenue returns the monthly revenue series for the chart.
func (s *DashboardService) Revenue(ctx context.Context) ([]repository.Revenue, error) {
	if cached, ok := s.revenueCache.Get(ctx, cache.KeyRevenue); ok {
		return *cached, nil
	}

	revenue, err := s.revenue.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch revenue")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch revenue data.")
	}

	s.revenueCache.Set(ctx, cache.KeyRevenue, &revenue)

	return revenue, nil
}

// LatestInvoices returns the five most recent invoices.
func (s *DashboardService) LatestInvoices(ctx context.Context) ([]repository.LatestInvoice, error) {
	invoices, err := s.invoices.Latest(ctx, latestInvoicesLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch latest invoices")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch the latest invoices.")
	}

	return invoices, nil
}
