package handler

import (
	"context"

	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ListInvoicesRequest carries the search term and page number for the
// invoices table. Both are optional; out-of-range pages are clamped by
// the service.
type ListInvoicesRequest struct {
	Query string `query:"query"`
	Page  int64  `query:"page"`
}

func (r *ListInvoicesRequest) Validate() error {
	return validator.New().Struct(r)
}

// InvoiceIDRequest addresses a single invoice by its path parameter.
type InvoiceIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *InvoiceIDRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateInvoiceRequest is the invoice creation payload. Amount is in
// major currency units.
type CreateInvoiceRequest struct {
	CustomerID string  `json:"customer_id" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=paid pending"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateInvoiceRequest is the invoice update payload.
type UpdateInvoiceRequest struct {
	ID         string  `param:"id" validate:"required,uuid"`
	CustomerID string  `json:"customer_id" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=paid pending"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateInvoiceResponse returns the id of a newly created invoice.
type CreateInvoiceResponse struct {
	ID string `json:"id"`
}

type invoiceService interface {
	Table(ctx context.Context, query string, page int64) (*service.InvoiceTable, error)
	GetByID(ctx context.Context, id string) (*repository.InvoiceForm, error)
	Create(ctx context.Context, input service.InvoiceInput) (string, error)
	Update(ctx context.Context, id string, input service.InvoiceInput) error
	Delete(ctx context.Context, id string) error
	ExportPDF(ctx context.Context, id string) ([]byte, string, error)
	SendReminder(ctx context.Context, id string) error
}

// InvoiceHandler serves the invoices table and invoice CRUD, plus the
// PDF export and reminder endpoints.
type InvoiceHandler struct {
	Handler
	invoices invoiceService
}

func NewInvoiceHandler(s *server.Server, invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
	}
}

// List returns one page of the searchable invoices table.
func (h *InvoiceHandler) List(c echo.Context, req *ListInvoicesRequest) (*service.InvoiceTable, error) {
	return h.invoices.Table(c.Request().Context(), req.Query, req.Page)
}

// GetByID returns the edit-form projection of one invoice.
func (h *InvoiceHandler) GetByID(c echo.Context, req *InvoiceIDRequest) (*repository.InvoiceForm, error) {
	return h.invoices.GetByID(c.Request().Context(), req.ID)
}

// Create stores a new invoice dated today.
func (h *InvoiceHandler) Create(c echo.Context, req *CreateInvoiceRequest) (*CreateInvoiceResponse, error) {
	id, err := h.invoices.Create(c.Request().Context(), service.InvoiceInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}

	return &CreateInvoiceResponse{ID: id}, nil
}

// Update replaces the customer, amount, and status of an invoice.
func (h *InvoiceHandler) Update(c echo.Context, req *UpdateInvoiceRequest) error {
	return h.invoices.Update(c.Request().Context(), req.ID, service.InvoiceInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
	})
}

// Delete removes an invoice.
func (h *InvoiceHandler) Delete(c echo.Context, req *InvoiceIDRequest) error {
	return h.invoices.Delete(c.Request().Context(), req.ID)
}

// ExportPDF renders an invoice as a downloadable PDF.
func (h *InvoiceHandler) ExportPDF(c echo.Context, req *InvoiceIDRequest) (*File, error) {
	data, filename, err := h.invoices.ExportPDF(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return &File{
		Name:        filename,
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// SendReminder enqueues a reminder email for a pending invoice.
func (h *InvoiceHandler) SendReminder(c echo.Context, req *InvoiceIDRequest) error {
	return h.invoices.SendReminder(c.Request().Context(), req.ID)
}
