package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/acmehq/dashboard-api/internal/errs"
	"github.com/acmehq/dashboard-api/internal/lib/cache"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/rs/zerolog"
)

type mockCardStore struct {
	data  *repository.CardData
	err   error
	calls int
}

func (m *mockCardStore) CardData(_ context.Context) (*repository.CardData, error) {
	m.calls++
	return m.data, m.err
}

type mockRevenueStore struct {
	revenue []repository.Revenue
	err     error
}

func (m *mockRevenueStore) List(_ context.Context) ([]repository.Revenue, error) {
	return m.revenue, m.err
}

type mockLatestStore struct {
	invoices []repository.LatestInvoice
	err      error
	limit    int
}

func (m *mockLatestStore) Latest(_ context.Context, limit int) ([]repository.LatestInvoice, error) {
	m.limit = limit
	return m.invoices, m.err
}

func newTestDashboardService(cards cardStore, revenue revenueStore, invoices latestInvoiceStore) *DashboardService {
	logger := zerolog.Nop()
	return &DashboardService{
		cards:        cards,
		revenue:      revenue,
		invoices:     invoices,
		cardCache:    cache.NewView[repository.CardData](nil, 0, &logger),
		revenueCache: cache.NewView[[]repository.Revenue](nil, 0, &logger),
		log:          &logger,
	}
}

func TestDashboardCardData(t *testing.T) {
	store := &mockCardStore{
		data: &repository.CardData{
			InvoiceCount:  12,
			CustomerCount: 4,
			TotalPaid:     "$1,050.00",
			TotalPending:  "$320.50",
		},
	}
	svc := newTestDashboardService(store, &mockRevenueStore{}, &mockLatestStore{})

	data, err := svc.CardData(context.Background())
	if err != nil {
		t.Fatalf("CardData returned error: %v", err)
	}
	if data.InvoiceCount != 12 || data.TotalPaid != "$1,050.00" {
		t.Errorf("unexpected card data: %+v", data)
	}
	if store.calls != 1 {
		t.Errorf("expected one store call, got %d", store.calls)
	}
}

func TestDashboardCardDataStoreFailure(t *testing.T) {
	store := &mockCardStore{err: errors.New("connection refused")}
	svc := newTestDashboardService(store, &mockRevenueStore{}, &mockLatestStore{})

	_, err := svc.CardData(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != 500 {
		t.Errorf("expected status 500, got %d", httpErr.Status)
	}
	if httpErr.Message != "Failed to fetch card data." {
		t.Errorf("unexpected message %q", httpErr.Message)
	}
	if strings.Contains(httpErr.Message, "connection refused") {
		t.Error("raw database error leaked into the response message")
	}
}

func TestDashboardRevenueStoreFailure(t *testing.T) {
	svc := newTestDashboardService(&mockCardStore{}, &mockRevenueStore{err: errors.New("boom")}, &mockLatestStore{})

	_, err := svc.Revenue(context.Background())

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Message != "Failed to fetch revenue data." {
		t.Errorf("unexpected message %q", httpErr.Message)
	}
}

func TestDashboardLatestInvoicesLimit(t *testing.T) {
	store := &mockLatestStore{
		invoices: []repository.LatestInvoice{{ID: "a", Name: "Ada", Amount: "$12.00"}},
	}
	svc := newTestDashboardService(&mockCardStore{}, &mockRevenueStore{}, store)

	invoices, err := svc.LatestInvoices(context.Background())
	if err != nil {
		t.Fatalf("LatestInvoices returned error: %v", err)
	}
	if len(invoices) != 1 || invoices[0].Name != "Ada" {
		t.Errorf("unexpected invoices: %+v", invoices)
	}
	if store.limit != latestInvoicesLimit {
		t.Errorf("expected limit %d, got %d", latestInvoicesLimit, store.limit)
	}
}
