// Package pdf renders invoices as PDF documents for download.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/acmehq/dashboard-api/internal/lib/currency"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/jung-kurt/gofpdf"
)

// RenderInvoice produces a single-page A4 PDF for the given invoice.
func RenderInvoice(inv *repository.InvoiceDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.ID), false)
	pdf.AddPage()

	// Header.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(100, 12, "Acme")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Invoice metadata.
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice no: %s", inv.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", inv.Date.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", strings.ToUpper(inv.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Billed customer.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, inv.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, inv.CustomerEmail, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Amount table.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(140, 8, fmt.Sprintf("Services for %s", inv.Date.Format("January 2006")), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, currency.FormatCents(inv.AmountCents), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, currency.FormatCents(inv.AmountCents), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}
