package notification

import (
	"context"
	"log/slog"
	"time"
)

// Receipt describes a paid recurring invoice to acknowledge to the donor.
type Receipt struct {
	InvoiceID       string
	Email           string
	AmountPaidCents int64
	PaidAt          time.Time
}

// Notifier delivers donor receipts to a downstream mail system. Actual
// dispatch belongs to an external collaborator; this package only defines
// the hook.
type Notifier interface {
	SendReceipt(ctx context.Context, receipt Receipt) error
}

// LoggerNotifier is a stub implementation that records receipts on the
// structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// SendReceipt writes the receipt to the structured logger.
func (n *LoggerNotifier) SendReceipt(_ context.Context, receipt Receipt) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("receipt",
		"invoice_id", receipt.InvoiceID,
		"email", receipt.Email,
		"amount_paid_cents", receipt.AmountPaidCents,
		"paid_at", receipt.PaidAt.UTC().Format(time.RFC3339),
	)
	return nil
}
