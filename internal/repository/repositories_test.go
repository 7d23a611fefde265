package repository

import (
	"errors"
	"testing"

	"github.com/acmehq/dashboard-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

func TestSearchPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "%%"},
		{"lee", "%lee%"},
		{"PAID", "%PAID%"},
	}
	for _, tc := range cases {
		if got := searchPattern(tc.in); got != tc.want {
			t.Errorf("searchPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int64
		want  int64
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{12, 2},
		{13, 3},
		{-4, 0},
	}
	for _, tc := range cases {
		if got := pageCount(tc.total, ItemsPerPage); got != tc.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tc.total, ItemsPerPage, got, tc.want)
		}
	}
}

func TestNotFoundAnnotation(t *testing.T) {
	err := notFound("invoices", pgx.ErrNoRows)

	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("annotated error should unwrap to pgx.ErrNoRows, got %v", err)
	}
	if !sqlerr.IsNotFound(err) {
		t.Fatalf("sqlerr.IsNotFound should recognize the annotated error")
	}

	httpErr := sqlerr.HandleError(err)
	if got := httpErr.Error(); got != "Invoice not found" {
		t.Errorf("HandleError message = %q, want %q", got, "Invoice not found")
	}
}
