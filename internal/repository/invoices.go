package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Invoice statuses allowed by the schema.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// LatestInvoice is a row of the dashboard's latest-invoices panel.
// Amount is pre-formatted for display.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// InvoiceRow is a row of the filtered invoices table, joined with the
// customer it bills. AmountCents carries the stored minor-unit value,
// Amount the formatted display string.
type InvoiceRow struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ImageURL    string    `json:"image_url"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// InvoiceForm is the edit-form projection of an invoice. Amount is in
// major units (stored cents divided by 100).
type InvoiceForm struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// InvoiceDetail is an invoice joined with its customer, used by the
// PDF export and the reminder email.
type InvoiceDetail struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	AmountCents   int64     `json:"amount_cents"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
}

// InvoicesRepository issues parameterized queries against the invoices
// table.
type InvoicesRepository struct {
	pool *pgxpool.Pool
}

// invoiceSearchWhere matches the search term case-insensitively against
// customer name/email and against the textual form of the invoice
// amount, date, and status.
const invoiceSearchWhere = `
		customers.name ILIKE $1 OR
		customers.email ILIKE $1 OR
		invoices.amount::text ILIKE $1 OR
		invoices.date::text ILIKE $1 OR
		invoices.status ILIKE $1`

// Latest returns the newest invoices joined with customer details,
// amounts formatted for display.
func (r *InvoicesRepository) Latest(ctx context.Context, limit int) ([]LatestInvoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT invoices.id, customers.name, customers.email, customers.image_url, invoices.amount
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying latest invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]LatestInvoice, 0, limit)
	for rows.Next() {
		var inv LatestInvoice
		var amountCents int64
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Email, &inv.ImageURL, &amountCents); err != nil {
			return nil, fmt.Errorf("scanning latest invoice: %w", err)
		}
		inv.Amount = currency.FormatCents(amountCents)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading latest invoices: %w", err)
	}

	return invoices, nil
}

// Filtered returns one page of invoices matching the search term,
// newest first. Page numbers start at 1; out-of-range pages yield an
// empty slice.
func (r *InvoicesRepository) Filtered(ctx context.Context, query string, page int64) ([]InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * ItemsPerPage

	rows, err := r.pool.Query(ctx, `
		SELECT
			invoices.id, invoices.customer_id, customers.name, customers.email,
			customers.image_url, invoices.amount, invoices.date, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE`+invoiceSearchWhere+`
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3`, searchPattern(query), ItemsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("querying filtered invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]InvoiceRow, 0, ItemsPerPage)
	for rows.Next() {
		var inv InvoiceRow
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Name, &inv.Email,
			&inv.ImageURL, &inv.AmountCents, &inv.Date, &inv.Status); err != nil {
			return nil, fmt.Errorf("scanning filtered invoice: %w", err)
		}
		inv.Amount = currency.FormatCents(inv.AmountCents)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading filtered invoices: %w", err)
	}

	return invoices, nil
}

// Pages returns the number of pages of invoices matching the search
// term: ceil(matching rows / ItemsPerPage).
func (r *InvoicesRepository) Pages(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE`+invoiceSearchWhere, searchPattern(query)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting filtered invoices: %w", err)
	}

	return pageCount(count, ItemsPerPage), nil
}

// GetByID returns the edit-form projection of a single invoice, with
// the amount converted from cents to major units. A missing row is
// reported as an annotated no-rows error, not a generic failure.
func (r *InvoicesRepository) GetByID(ctx context.Context, id string) (*InvoiceForm, error) {
	var form InvoiceForm
	var amountCents int64
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, amount, status
		FROM invoices
		WHERE id = $1`, id).Scan(&form.ID, &form.CustomerID, &amountCents, &form.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("invoices", err)
	}
	if err != nil {
		return nil, fmt.Errorf("querying invoice %s: %w", id, err)
	}

	form.Amount = currency.CentsToMajor(amountCents)
	return &form, nil
}

// GetDetail returns an invoice joined with its customer.
func (r *InvoicesRepository) GetDetail(ctx context.Context, id string) (*InvoiceDetail, error) {
	var d InvoiceDetail
	err := r.pool.QueryRow(ctx, `
		SELECT invoices.id, customers.name, customers.email, invoices.amount, invoices.date, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE invoices.id = $1`, id).
		Scan(&d.ID, &d.CustomerName, &d.CustomerEmail, &d.AmountCents, &d.Date, &d.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("invoices", err)
	}
	if err != nil {
		return nil, fmt.Errorf("querying invoice detail %s: %w", id, err)
	}

	return &d, nil
}

// Create inserts an invoice dated today and returns its id.
// amountCents must already be in minor units.
func (r *InvoicesRepository) Create(ctx context.Context, customerID string, amountCents int64, status string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, CURRENT_DATE)
		RETURNING id`, customerID, amountCents, status).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting invoice: %w", err)
	}

	return id, nil
}

// Update rewrites the mutable fields of an invoice. Updating a
// nonexistent id is reported as a no-rows error.
func (r *InvoicesRepository) Update(ctx context.Context, id, customerID string, amountCents int64, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`, customerID, amountCents, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("invoices", pgx.ErrNoRows)
	}

	return nil
}

// Delete removes an invoice. Deleting a nonexistent id is reported as
// a no-rows error.
func (r *InvoicesRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("invoices", pgx.ErrNoRows)
	}

	return nil
}
