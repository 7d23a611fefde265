package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedCustomer struct {
	name     string
	email    string
	imageURL string
}

type seedInvoice struct {
	customerEmail string
	amountCents   int64
	status        string
	date          string
}

var seedCustomers = []seedCustomer{
	{"Evil Rabbit", "evil@rabbit.com", "/customers/evil-rabbit.png"},
	{"Delba de Oliveira", "delba@oliveira.com", "/customers/delba-de-oliveira.png"},
	{"Lee Robinson", "lee@robinson.com", "/customers/lee-robinson.png"},
	{"Michael Novotny", "michael@novotny.com", "/customers/michael-novotny.png"},
	{"Amy Burns", "amy@burns.com", "/customers/amy-burns.png"},
	{"Balazs Orban", "balazs@orban.com", "/customers/balazs-orban.png"},
}

var seedInvoices = []seedInvoice{
	{"evil@rabbit.com", 15795, "pending", "2022-12-06"},
	{"delba@oliveira.com", 20348, "pending", "2022-11-14"},
	{"amy@burns.com", 3040, "paid", "2022-10-29"},
	{"michael@novotny.com", 44800, "paid", "2023-09-10"},
	{"balazs@orban.com", 34577, "pending", "2023-08-05"},
	{"lee@robinson.com", 54246, "pending", "2023-07-16"},
	{"evil@rabbit.com", 66600, "pending", "2023-06-27"},
	{"michael@novotny.com", 32545, "paid", "2023-06-09"},
	{"amy@burns.com", 1250, "paid", "2023-06-17"},
	{"balazs@orban.com", 8546, "paid", "2023-06-07"},
	{"delba@oliveira.com", 500, "paid", "2023-08-19"},
	{"balazs@orban.com", 8945, "paid", "2023-06-03"},
	{"lee@robinson.com", 1000, "paid", "2022-06-05"},
}

var seedRevenue = map[string]int64{
	"Jan": 200000, "Feb": 180000, "Mar": 220000, "Apr": 250000,
	"May": 230000, "Jun": 320000, "Jul": 350000, "Aug": 370000,
	"Sep": 250000, "Oct": 280000, "Nov": 300000, "Dec": 480000,
}

// Seed inserts demo data for local development. Inserts are idempotent
// on the customer email and revenue month unique constraints, so the
// command can run repeatedly; invoices are only inserted into an empty
// table to avoid duplicates.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, c := range seedCustomers {
		_, err := pool.Exec(ctx, `
			INSERT INTO customers (name, email, image_url)
			VALUES ($1, $2, $3)
			ON CONFLICT ON CONSTRAINT customers_email_key DO NOTHING`,
			c.name, c.email, c.imageURL)
		if err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.email, err)
		}
	}

	var invoiceCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&invoiceCount); err != nil {
		return fmt.Errorf("counting invoices: %w", err)
	}

	if invoiceCount == 0 {
		for _, inv := range seedInvoices {
			_, err := pool.Exec(ctx, `
				INSERT INTO invoices (customer_id, amount, status, date)
				SELECT id, $2, $3, $4::date FROM customers WHERE email = $1`,
				inv.customerEmail, inv.amountCents, inv.status, inv.date)
			if err != nil {
				return fmt.Errorf("seeding invoice for %s: %w", inv.customerEmail, err)
			}
		}
	}

	for month, cents := range seedRevenue {
		_, err := pool.Exec(ctx, `
			INSERT INTO revenue (month, revenue)
			VALUES ($1, $2)
			ON CONFLICT ON CONSTRAINT revenue_month_key DO NOTHING`,
			month, cents)
		if err != nil {
			return fmt.Errorf("seeding revenue for %s: %w", month, err)
		}
	}

	return nil
}
