package repository

import (
	"context"
	"fmt"

	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// CardData carries the four dashboard summary cards. The paid/pending
// totals are formatted for display.
type CardData struct {
	InvoiceCount  int64  `json:"invoice_count"`
	CustomerCount int64  `json:"customer_count"`
	TotalPaid     string `json:"total_paid"`
	TotalPending  string `json:"total_pending"`
}

// DashboardRepository computes the dashboard summary aggregates.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// CardData runs the three aggregate queries concurrently and combines
// the results once all have finished. The queries are independent, so
// no ordering is required beyond "all three done"; the first error
// cancels the other queries through the group context.
func (r *DashboardRepository) CardData(ctx context.Context) (*CardData, error) {
	var (
		invoiceCount  int64
		customerCount int64
		paidCents     int64
		pendingCents  int64
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&invoiceCount); err != nil {
			return fmt.Errorf("counting invoices: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&customerCount); err != nil {
			return fmt.Errorf("counting customers: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := r.pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
				COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
			FROM invoices`).Scan(&paidCents, &pendingCents)
		if err != nil {
			return fmt.Errorf("summing invoice amounts: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &CardData{
		InvoiceCount:  invoiceCount,
		CustomerCount: customerCount,
		TotalPaid:     currency.FormatCents(paidCents),
		TotalPending:  currency.FormatCents(pendingCents),
	}, nil
}
