package service

import (
	"context"
	"fmt"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/lib/cache"
	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/acmehq/dashboard-api/internal/lib/job"
	"github.com/acmehq/dashboard-api/internal/lib/pdf"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type invoiceStore interface {
	Filtered(ctx context.Context, query string, page int64) ([]repository.InvoiceRow, error)
	Pages(ctx context.Context, query string) (int64, error)
	GetByID(ctx context.Context, id string) (*repository.InvoiceForm, error)
	GetDetail(ctx context.Context, id string) (*repository.InvoiceDetail, error)
	Create(ctx context.Context, customerID string, amountCents int64, status string) (string, error)
	Update(ctx context.Context, id, customerID string, amountCents int64, status string) error
	Delete(ctx context.Context, id string) error
}

type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// InvoiceTable is one page of the searchable invoices table along with
// the total page count for the same search term.
type InvoiceTable struct {
	Invoices   []repository.InvoiceRow `json:"invoices"`
	TotalPages int64                   `json:"total_pages"`
	Page       int64                   `json:"page"`
	Query      string                  `json:"query"`
}

// InvoiceInput carries the create/update form fields. Amount is in
// major currency units and is converted to cents before storage.
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     string
}

// InvoiceService implements invoice reads and writes. Writes invalidate
// the cached dashboard read models, since cards and revenue are derived
// from invoice rows.
type InvoiceService struct {
	invoices invoiceStore
	enqueuer taskEnqueuer

	cardCache    *cache.View[repository.CardData]
	revenueCache *cache.View[[]repository.Revenue]

	log *zerolog.Logger
}

func NewInvoiceService(
	s *server.Server,
	repos *repository.Repositories,
	cardCache *cache.View[repository.CardData],
	revenueCache *cache.View[[]repository.Revenue],
) *InvoiceService {
	return &InvoiceService{
		invoices:     repos.Invoices,
		enqueuer:     s.Job.Client,
		cardCache:    cardCache,
		revenueCache: revenueCache,
		log:          s.Logger,
	}
}

// Table returns one page of invoices matching the search term, plus the
// total number of pages. Pages below 1 are clamped to the first page.
func (s *InvoiceService) Table(ctx context.Context, query string, page int64) (*InvoiceTable, error) {
	if page < 1 {
		page = 1
	}

	totalPages, err := s.invoices.Pages(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to count invoice pages")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch total number of invoices.")
	}

	invoices, err := s.invoices.Filtered(ctx, query, page)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Int64("page", page).Msg("failed to fetch invoices")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch invoices.")
	}

	return &InvoiceTable{
		Invoices:   invoices,
		TotalPages: totalPages,
		Page:       page,
		Query:      query,
	}, nil
}

// GetByID returns the edit-form projection of a single invoice.
func (s *InvoiceService) GetByID(ctx context.Context, id string) (*repository.InvoiceForm, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, sqlerr.HandleError(err)
		}
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to fetch invoice")
		return nil, errs.NewInternalServerError().WithMessage("Failed to fetch invoice.")
	}

	return invoice, nil
}

// Create stores a new invoice dated today and returns its id.
func (s *InvoiceService) Create(ctx context.Context, input InvoiceInput) (string, error) {
	id, err := s.invoices.Create(ctx, input.CustomerID, currency.MajorToCents(input.Amount), input.Status)
	if err != nil {
		if clientErr := asClientError(err); clientErr != nil {
			return "", clientErr
		}
		s.log.Error().Err(err).Msg("failed to create invoice")
		return "", errs.NewInternalServerError().WithMessage("Failed to create invoice.")
	}

	s.invalidateDashboardCaches(ctx)

	return id, nil
}

// Update replaces the customer, amount, and status of an invoice.
func (s *InvoiceService) Update(ctx context.Context, id string, input InvoiceInput) error {
	err := s.invoices.Update(ctx, id, input.CustomerID, currency.MajorToCents(input.Amount), input.Status)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return sqlerr.HandleError(err)
		}
		if clientErr := asClientError(err); clientErr != nil {
			return clientErr
		}
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		return errs.NewInternalServerError().WithMessage("Failed to update invoice.")
	}

	s.invalidateDashboardCaches(ctx)

	return nil
}

// Delete removes an invoice.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		if sqlerr.IsNotFound(err) {
			return sqlerr.HandleError(err)
		}
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")
		return errs.NewInternalServerError().WithMessage("Failed to delete invoice.")
	}

	s.invalidateDashboardCaches(ctx)

	return nil
}

// ExportPDF renders an invoice as a PDF document and returns the bytes
// together with a download filename.
func (s *InvoiceService) ExportPDF(ctx context.Context, id string) ([]byte, string, error) {
	detail, err := s.invoices.GetDetail(ctx, id)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, "", sqlerr.HandleError(err)
		}
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to fetch invoice")
		return nil, "", errs.NewInternalServerError().WithMessage("Failed to fetch invoice.")
	}

	document, err := pdf.RenderInvoice(detail)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to render invoice pdf")
		return nil, "", errs.NewInternalServerError().WithMessage("Failed to generate invoice PDF.")
	}

	return document, fmt.Sprintf("invoice-%s.pdf", id), nil
}

// SendReminder enqueues a reminder email for a pending invoice. The
// worker re-reads the invoice before sending, so an invoice paid after
// enqueueing is skipped there as well.
func (s *InvoiceService) SendReminder(ctx context.Context, id string) error {
	detail, err := s.invoices.GetDetail(ctx, id)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return sqlerr.HandleError(err)
		}
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to fetch invoice")
		return errs.NewInternalServerError().WithMessage("Failed to fetch invoice.")
	}

	if detail.Status != repository.StatusPending {
		return errs.NewBadRequestError("Reminders can only be sent for pending invoices.", true, nil, nil, nil)
	}

	task, err := job.NewInvoiceReminderTask(id)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to build reminder task")
		return errs.NewInternalServerError().WithMessage("Failed to queue invoice reminder.")
	}

	if _, err := s.enqueuer.Enqueue(task); err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to enqueue reminder task")
		return errs.NewInternalServerError().WithMessage("Failed to queue invoice reminder.")
	}

	return nil
}

func (s *InvoiceService) invalidateDashboardCaches(ctx context.Context) {
	s.cardCache.Delete(ctx, cache.KeyCardData)
	s.revenueCache.Delete(ctx, cache.KeyRevenue)
}

// asClientError maps constraint violations (unknown customer, negative
// amount, bad status) to the 4xx error sqlerr derives for them. Other
// errors return nil so the caller can substitute its own message.
func asClientError(err error) error {
	if sqlerr.ErrCode(err) == sqlerr.Other {
		return nil
	}
	return sqlerr.HandleError(err)
}
