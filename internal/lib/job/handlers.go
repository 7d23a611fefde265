package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/acmehq/dashboard-api/internal/lib/email"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Handler dependencies, set once by InitHandlers before the worker
// server starts.
var (
	emailClient *email.Client
	repos       *repository.Repositories
)

// InitHandlers initializes dependencies required by job handlers:
// the email client and a repository container over the shared pool.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, pool *pgxpool.Pool) {
	emailClient = email.NewClient(cfg, logger)
	repos = repository.NewRepositories(pool)
}

// handleInvoiceReminderTask sends a payment reminder for a pending
// invoice. The invoice is re-read inside the worker; if it has been
// paid or deleted since enqueueing, the task completes without sending.
func (j *JobService) handleInvoiceReminderTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice reminder payload: %w", err)
	}

	j.logger.Info().
		Str("type", "invoice_reminder").
		Str("invoice_id", p.InvoiceID).
		Msg("Processing invoice reminder task")

	detail, err := repos.Invoices.GetDetail(ctx, p.InvoiceID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			j.logger.Info().
				Str("type", "invoice_reminder").
				Str("invoice_id", p.InvoiceID).
				Msg("Invoice no longer exists, skipping reminder")
			return nil
		}
		j.logger.Error().
			Str("type", "invoice_reminder").
			Str("invoice_id", p.InvoiceID).
			Err(err).
			Msg("Failed to load invoice for reminder")
		return err
	}

	if detail.Status != repository.StatusPending {
		j.logger.Info().
			Str("type", "invoice_reminder").
			Str("invoice_id", p.InvoiceID).
			Str("status", detail.Status).
			Msg("Invoice no longer pending, skipping reminder")
		return nil
	}

	err = emailClient.SendInvoiceReminder(
		detail.CustomerEmail,
		detail.CustomerName,
		detail.ID,
		currency.FormatCents(detail.AmountCents),
		detail.Date.Format("2006-01-02"),
	)
	if err != nil {
		j.logger.Error().
			Str("type", "invoice_reminder").
			Str("invoice_id", p.InvoiceID).
			Err(err).
			Msg("Failed to send invoice reminder")
		return err
	}

	j.logger.Info().
		Str("type", "invoice_reminder").
		Str("invoice_id", p.InvoiceID).
		Str("to", detail.CustomerEmail).
		Msg("Successfully sent invoice reminder")

	return nil
}

// handleRevenueRollupTask recomputes the revenue summary table from
// paid invoices.
func (j *JobService) handleRevenueRollupTask(ctx context.Context, t *asynq.Task) error {
	j.logger.Info().
		Str("type", "revenue_rollup").
		Msg("Processing revenue rollup task")

	months, err := repos.Revenue.Rollup(ctx)
	if err != nil {
		j.logger.Error().
			Str("type", "revenue_rollup").
			Err(err).
			Msg("Failed to roll up revenue")
		return err
	}

	j.logger.Info().
		Str("type", "revenue_rollup").
		Int64("months", months).
		Msg("Successfully rolled up revenue")

	return nil
}
