package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/acmehq/dashboard-api/internal/repository"
)

func TestRenderInvoice(t *testing.T) {
	inv := &repository.InvoiceDetail{
		ID:            "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		CustomerName:  "Delba de Oliveira",
		CustomerEmail: "delba@oliveira.com",
		AmountCents:   889,
		Date:          time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
		Status:        "pending",
	}

	data, err := RenderInvoice(inv)
	if err != nil {
		t.Fatalf("RenderInvoice returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("RenderInvoice returned empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("document does not start with %%PDF header: %q", data[:8])
	}
}
