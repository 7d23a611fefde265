package service

import (
	"context"
	"errors"
	"testing"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/rs/zerolog"
)

type mockCustomerStore struct {
	fields []repository.CustomerField
	rows   []repository.CustomerRow
	err    error
	query  string
}

func (m *mockCustomerStore) List(_ context.Context) ([]repository.CustomerField, error) {
	return m.fields, m.err
}

func (m *mockCustomerStore) Filtered(_ context.Context, query string) ([]repository.CustomerRow, error) {
	m.query = query
	return m.rows, m.err
}

func newTestCustomerService(store customerStore) *CustomerService {
	logger := zerolog.Nop()
	return &CustomerService{customers: store, log: &logger}
}

func TestCustomerList(t *testing.T) {
	store := &mockCustomerStore{
		fields: []repository.CustomerField{{ID: "c-1", Name: "Ada Lovelace"}},
	}
	svc := newTestCustomerService(store)

	customers, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Ada Lovelace" {
		t.Errorf("unexpected customers: %+v", customers)
	}
}

func TestCustomerListStoreFailure(t *testing.T) {
	svc := newTestCustomerService(&mockCustomerStore{err: errors.New("boom")})

	_, err := svc.List(context.Background())

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Message != "Failed to fetch all customers." {
		t.Errorf("unexpected message %q", httpErr.Message)
	}
}

func TestCustomerTablePassesQuery(t *testing.T) {
	store := &mockCustomerStore{
		rows: []repository.CustomerRow{{ID: "c-1", Name: "Ada Lovelace", TotalInvoices: 2}},
	}
	svc := newTestCustomerService(store)

	rows, err := svc.Table(context.Background(), "ada")
	if err != nil {
		t.Fatalf("Table returned error: %v", err)
	}
	if store.query != "ada" {
		t.Errorf("expected query passed through, got %q", store.query)
	}
	if len(rows) != 1 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
