package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateInvoiceReminder corresponds to templates/invoice_reminder.html
	TemplateInvoiceReminder Template = "invoice_reminder"
)
