package email

// SendInvoiceReminder sends a payment reminder for a pending invoice.
// amount is the formatted display string, dueDate an ISO date.
func (c *Client) SendInvoiceReminder(to, customerName, invoiceID, amount, dueDate string) error {
	data := map[string]string{
		"CustomerName": customerName,
		"InvoiceID":    invoiceID,
		"Amount":       amount,
		"DueDate":      dueDate,
	}

	return c.SendEmail(
		to,
		"Your invoice from Acme is awaiting payment",
		TemplateInvoiceReminder,
		data,
	)
}
