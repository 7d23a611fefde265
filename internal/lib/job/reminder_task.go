package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskInvoiceReminder is the task type for pending-invoice
	// reminder emails.
	TaskInvoiceReminder = "email:invoice_reminder"

	// TaskRevenueRollup is the task type for recomputing the revenue
	// summary table.
	TaskRevenueRollup = "dashboard:revenue_rollup"
)

// InvoiceReminderPayload is the JSON payload for the reminder task.
// Only the invoice id is carried; the handler re-reads the invoice so
// a paid-in-the-meantime invoice never gets a reminder.
type InvoiceReminderPayload struct {
	InvoiceID string `json:"invoice_id"`
}

// NewInvoiceReminderTask constructs an Asynq task for a reminder email.
func NewInvoiceReminderTask(invoiceID string) (*asynq.Task, error) {
	payload, err := json.Marshal(InvoiceReminderPayload{
		InvoiceID: invoiceID,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceReminder,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewRevenueRollupTask constructs an Asynq task that recomputes the
// revenue summary table. Rollups are idempotent, so retries are safe.
func NewRevenueRollupTask() (*asynq.Task, error) {
	return asynq.NewTask(
		TaskRevenueRollup,
		nil,
		asynq.MaxRetry(2),
		asynq.Queue("low"),
		asynq.Timeout(2*time.Minute),
	), nil
}
