package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemsPerPage is the fixed page size for filtered invoice lists.
const ItemsPerPage = 6

// Repositories is a container for all repository instances, initialized
// once from the shared database pool.
type Repositories struct {
	Invoices  *InvoicesRepository
	Customers *CustomersRepository
	Revenue   *RevenueRepository
	Dashboard *DashboardRepository
}

// NewRepositories constructs the repository container from the shared
// database pool. Background job handlers build their own container
// from the same pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Invoices:  &InvoicesRepository{pool: pool},
		Customers: &CustomersRepository{pool: pool},
		Revenue:   &RevenueRepository{pool: pool},
		Dashboard: &DashboardRepository{pool: pool},
	}
}

// searchPattern wraps a raw search term in wildcards for ILIKE matching.
func searchPattern(query string) string {
	return "%" + query + "%"
}

// pageCount returns ceil(total / size) for positive sizes.
func pageCount(total, size int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// notFound annotates a no-rows error with the table name so the error
// classifier can produce an entity-specific not-found message.
func notFound(table string, err error) error {
	return fmt.Errorf("table:%s: %w", table, err)
}
