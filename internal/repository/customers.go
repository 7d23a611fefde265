package repository

import (
	"context"
	"fmt"

	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerField is the minimal projection used by select inputs.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerRow is a row of the customers table view: customer identity
// plus invoice aggregates, with the sums formatted for display.
type CustomerRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// CustomersRepository issues parameterized queries against the
// customers table.
type CustomersRepository struct {
	pool *pgxpool.Pool
}

// List returns all customers as id/name pairs ordered by name.
func (r *CustomersRepository) List(ctx context.Context) ([]CustomerField, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name
		FROM customers
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	customers := make([]CustomerField, 0, 64)
	for rows.Next() {
		var c CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading customers: %w", err)
	}

	return customers, nil
}

// Filtered returns customers matching the search term together with
// their invoice count and pending/paid sums. Customers without
// invoices appear with zero aggregates.
func (r *CustomersRepository) Filtered(ctx context.Context, query string) ([]CustomerRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			customers.id, customers.name, customers.email, customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`, searchPattern(query))
	if err != nil {
		return nil, fmt.Errorf("querying filtered customers: %w", err)
	}
	defer rows.Close()

	customers := make([]CustomerRow, 0, 64)
	for rows.Next() {
		var c CustomerRow
		var pendingCents, paidCents int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL,
			&c.TotalInvoices, &pendingCents, &paidCents); err != nil {
			return nil, fmt.Errorf("scanning filtered customer: %w", err)
		}
		c.TotalPending = currency.FormatCents(pendingCents)
		c.TotalPaid = currency.FormatCents(paidCents)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading filtered customers: %w", err)
	}

	return customers, nil
}
