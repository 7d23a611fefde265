package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Revenue is one month of the revenue summary table.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// RevenueRepository reads and rebuilds the revenue summary table.
type RevenueRepository struct {
	pool *pgxpool.Pool
}

// monthOrder sorts the textual month labels chronologically.
const monthOrder = `
		ORDER BY array_position(
			ARRAY['Jan','Feb','Mar','Apr','May','Jun','Jul','Aug','Sep','Oct','Nov','Dec'],
			month)`

// List returns the full revenue series in calendar order.
func (r *RevenueRepository) List(ctx context.Context) ([]Revenue, error) {
	rows, err := r.pool.Query(ctx, `SELECT month, revenue FROM revenue`+monthOrder)
	if err != nil {
		return nil, fmt.Errorf("querying revenue: %w", err)
	}
	defer rows.Close()

	revenue := make([]Revenue, 0, 12)
	for rows.Next() {
		var rev Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}
		revenue = append(revenue, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading revenue: %w", err)
	}

	return revenue, nil
}

// Rollup recomputes the revenue summary table from paid invoices,
// upserting one row per month. Months without paid invoices keep their
// previous value; a full rebuild would need a preceding truncate.
func (r *RevenueRepository) Rollup(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO revenue (month, revenue)
		SELECT to_char(date, 'Mon') AS month, SUM(amount) AS revenue
		FROM invoices
		WHERE status = 'paid'
		GROUP BY to_char(date, 'Mon')
		ON CONFLICT ON CONSTRAINT revenue_month_key
		DO UPDATE SET revenue = EXCLUDED.revenue`)
	if err != nil {
		return 0, fmt.Errorf("rolling up revenue: %w", err)
	}

	return tag.RowsAffected(), nil
}
