package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T: %v", err, err)
	}
	return httpErr
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "invoices",
		ColumnName:     "customer_id",
		ConstraintName: "invoices_customer_id_fkey",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("creating invoice: %w", pgErr)))

	if httpErr.Status != 400 {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "INVOICE_NOT_FOUND" {
		t.Errorf("code = %q, want %q", httpErr.Code, "INVOICE_NOT_FOUND")
	}
	if httpErr.Message != "The referenced Customer does not exist" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "customers",
		ConstraintName: "customers_email_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	if httpErr.Status != 400 {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "CUSTOMER_ALREADY_EXISTS" {
		t.Errorf("code = %q, want %q", httpErr.Code, "CUSTOMER_ALREADY_EXISTS")
	}
	if httpErr.Message != "A Customer with this Email already exists" {
		t.Errorf("message = %q", httpErr.Message)
	}
	if !httpErr.Override {
		t.Error("unique violation message should be safe to show verbatim")
	}
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "invoices",
		ColumnName: "amount",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	if httpErr.Status != 400 {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "INVOICE_REQUIRED" {
		t.Errorf("code = %q, want %q", httpErr.Code, "INVOICE_REQUIRED")
	}
	if httpErr.Message != "The Amount is required" {
		t.Errorf("message = %q", httpErr.Message)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "amount" || httpErr.Errors[0].Error != "is required" {
		t.Errorf("field errors = %+v", httpErr.Errors)
	}
}

func TestHandleErrorCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23514",
		Severity:   "ERROR",
		TableName:  "invoices",
		ColumnName: "status",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	if httpErr.Status != 400 {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "INVOICE_INVALID" {
		t.Errorf("code = %q, want %q", httpErr.Code, "INVOICE_INVALID")
	}
	if httpErr.Message != "The Status value does not meet required conditions" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorUnmappedPgCode(t *testing.T) {
	// Undefined table is a programming error, not a client mistake.
	pgErr := &pgconn.PgError{Code: "42P01", Severity: "ERROR"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	if httpErr.Status != 500 {
		t.Errorf("status = %d, want 500", httpErr.Status)
	}
}

func TestHandleErrorNoRows(t *testing.T) {
	annotated := fmt.Errorf("table:invoices: querying invoice by id: %w", pgx.ErrNoRows)

	httpErr := asHTTPError(t, HandleError(annotated))
	if httpErr.Status != 404 {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
	if httpErr.Message != "Invoice not found" {
		t.Errorf("message = %q, want %q", httpErr.Message, "Invoice not found")
	}

	plain := asHTTPError(t, HandleError(pgx.ErrNoRows))
	if plain.Status != 404 || plain.Message != "Resource not found" {
		t.Errorf("unannotated no-rows: status = %d, message = %q", plain.Status, plain.Message)
	}
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewBadRequestError("already handled", true, nil, nil, nil)

	if got := HandleError(original); got != original {
		t.Errorf("expected the same *errs.HTTPError back, got %v", got)
	}
}

func TestHandleErrorUnknownError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	if httpErr.Status != 500 {
		t.Errorf("status = %d, want 500", httpErr.Status)
	}
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "revenue"}

	if got := ErrCode(fmt.Errorf("inserting revenue: %w", pgErr)); got != UniqueViolation {
		t.Errorf("ErrCode(wrapped PgError) = %v, want UniqueViolation", got)
	}
	if got := ErrCode(ConvertPgError(pgErr)); got != UniqueViolation {
		t.Errorf("ErrCode(*Error) = %v, want UniqueViolation", got)
	}
	if got := ErrCode(errors.New("timeout")); got != Other {
		t.Errorf("ErrCode(plain error) = %v, want Other", got)
	}
	if got := ErrCode(pgx.ErrNoRows); got != Other {
		t.Errorf("ErrCode(no rows) = %v, want Other", got)
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table string
		code  Code
		want  string
	}{
		{"invoices", ForeignKeyViolation, "INVOICE_NOT_FOUND"},
		{"customers", UniqueViolation, "CUSTOMER_ALREADY_EXISTS"},
		{"invoices", NotNullViolation, "INVOICE_REQUIRED"},
		{"revenue", CheckViolation, "REVENUE_INVALID"},
		{"", Other, "RECORD_ERROR"},
	}

	for _, tt := range tests {
		if got := generateErrorCode(tt.table, tt.code); got != tt.want {
			t.Errorf("generateErrorCode(%q, %v) = %q, want %q", tt.table, tt.code, got, tt.want)
		}
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"customers_email_key", "email"},
		{"revenue_month_ukey", "month"},
		{"unique_customers_email", "email"},
		{"customers_pkey", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := extractColumnForUniqueViolation(tt.constraint); got != tt.want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}
