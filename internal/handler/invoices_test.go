package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/service"
	"github.com/labstack/echo/v4"
)

const testInvoiceID = "3958dc9e-712f-4377-85e9-fec4b6a6442a"

type mockInvoiceService struct {
	table    *service.InvoiceTable
	form     *repository.InvoiceForm
	pdf      []byte
	filename string
	err      error

	query     string
	page      int64
	createdID string
	input     service.InvoiceInput
	calls     int
}

func (m *mockInvoiceService) Table(_ context.Context, query string, page int64) (*service.InvoiceTable, error) {
	m.calls++
	m.query = query
	m.page = page
	return m.table, m.err
}

func (m *mockInvoiceService) GetByID(_ context.Context, _ string) (*repository.InvoiceForm, error) {
	m.calls++
	return m.form, m.err
}

func (m *mockInvoiceService) Create(_ context.Context, input service.InvoiceInput) (string, error) {
	m.calls++
	m.input = input
	return m.createdID, m.err
}

func (m *mockInvoiceService) Update(_ context.Context, _ string, input service.InvoiceInput) error {
	m.calls++
	m.input = input
	return m.err
}

func (m *mockInvoiceService) Delete(_ context.Context, _ string) error {
	m.calls++
	return m.err
}

func (m *mockInvoiceService) ExportPDF(_ context.Context, _ string) ([]byte, string, error) {
	m.calls++
	return m.pdf, m.filename, m.err
}

func (m *mockInvoiceService) SendReminder(_ context.Context, _ string) error {
	m.calls++
	return m.err
}

func newInvoiceTestServer(svc invoiceService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(nil).GlobalErrorHandler

	h := &InvoiceHandler{invoices: svc}
	e.GET("/api/v1/invoices", Handle[ListInvoicesRequest](h.Handler, h.List, http.StatusOK))
	e.POST("/api/v1/invoices", Handle[CreateInvoiceRequest](h.Handler, h.Create, http.StatusCreated))
	e.GET("/api/v1/invoices/:id", Handle[InvoiceIDRequest](h.Handler, h.GetByID, http.StatusOK))
	e.PUT("/api/v1/invoices/:id", HandleNoContent[UpdateInvoiceRequest](h.Handler, h.Update, http.StatusNoContent))
	e.DELETE("/api/v1/invoices/:id", HandleNoContent[InvoiceIDRequest](h.Handler, h.Delete, http.StatusNoContent))
	e.GET("/api/v1/invoices/:id/pdf", HandleFile[InvoiceIDRequest](h.Handler, h.ExportPDF, http.StatusOK))
	e.POST("/api/v1/invoices/:id/reminder", HandleNoContent[InvoiceIDRequest](h.Handler, h.SendReminder, http.StatusAccepted))

	return e
}

func TestInvoiceListBindsQueryAndPage(t *testing.T) {
	svc := &mockInvoiceService{
		table: &service.InvoiceTable{TotalPages: 2, Page: 2, Query: "ada"},
	}
	e := newInvoiceTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices?query=ada&page=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.query != "ada" || svc.page != 2 {
		t.Errorf("service received query=%q page=%d", svc.query, svc.page)
	}
	if !strings.Contains(rec.Body.String(), `"total_pages":2`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestInvoiceGetByIDRejectsBadID(t *testing.T) {
	svc := &mockInvoiceService{}
	e := newInvoiceTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 0 {
		t.Error("service should not be called for an invalid id")
	}
}

func TestInvoiceGetByIDNotFound(t *testing.T) {
	svc := &mockInvoiceService{err: errs.NewNotFoundError("Invoice not found", true, nil)}
	e := newInvoiceTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/"+testInvoiceID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Invoice not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestInvoiceCreate(t *testing.T) {
	svc := &mockInvoiceService{createdID: "new-id"}
	e := newInvoiceTestServer(svc)

	body := `{"customer_id":"` + testInvoiceID + `","amount":120.50,"status":"pending"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.input.Amount != 120.50 || svc.input.Status != "pending" {
		t.Errorf("service received input %+v", svc.input)
	}
	if !strings.Contains(rec.Body.String(), `"id":"new-id"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestInvoiceCreateRejectsBadStatus(t *testing.T) {
	svc := &mockInvoiceService{}
	e := newInvoiceTestServer(svc)

	body := `{"customer_id":"` + testInvoiceID + `","amount":10,"status":"overdue"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 0 {
		t.Error("service should not be called for an invalid payload")
	}
}

func TestInvoiceUpdateNoContent(t *testing.T) {
	svc := &mockInvoiceService{}
	e := newInvoiceTestServer(svc)

	body := `{"customer_id":"` + testInvoiceID + `","amount":99.99,"status":"paid"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/invoices/"+testInvoiceID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.input.Amount != 99.99 {
		t.Errorf("service received input %+v", svc.input)
	}
}

func TestInvoiceExportPDF(t *testing.T) {
	svc := &mockInvoiceService{
		pdf:      []byte("%PDF-1.4 fake"),
		filename: "invoice-" + testInvoiceID + ".pdf",
	}
	e := newInvoiceTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/"+testInvoiceID+"/pdf", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, "application/pdf") {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, svc.filename) {
		t.Errorf("content disposition = %q", got)
	}
}

func TestInvoiceSendReminderAccepted(t *testing.T) {
	svc := &mockInvoiceService{}
	e := newInvoiceTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/"+testInvoiceID+"/reminder", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 1 {
		t.Errorf("expected one service call, got %d", svc.calls)
	}
}
