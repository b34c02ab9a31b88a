package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/forgeunbound/donation_engine/internal/notification"
)

const signatureHeader = "Stripe-Signature"

// Handler receives signed processor events. Verification happens on the
// raw body before any parsing; an unverified payload is never acted on.
type Handler struct {
	secret   string
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewHandler constructs a webhook handler bound to the endpoint signing
// secret.
func NewHandler(secret string, notifier notification.Notifier, logger *slog.Logger) *Handler {
	return &Handler{secret: secret, notifier: notifier, logger: logger}
}

// Receive handles POST /webhook. Once an event verifies it is always
// acknowledged with 200: hook failures are logged, not propagated, so the
// processor does not retry for side effects that payment correctness does
// not require.
func (h *Handler) Receive(c *fiber.Ctx) error {
	if h.secret == "" {
		h.logger.Warn("webhook secret not configured")
		return c.Status(http.StatusBadRequest).SendString("Webhook secret not configured")
	}

	event, err := webhook.ConstructEvent(c.Body(), c.Get(signatureHeader), h.secret)
	if err != nil {
		h.logger.Error("webhook signature verification failed", "error", err)
		return c.Status(http.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	h.dispatch(c.UserContext(), event)

	return c.JSON(fiber.Map{"received": true})
}

func (h *Handler) dispatch(ctx context.Context, event stripe.Event) {
	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("decode payment_intent.succeeded", "error", err)
			return
		}
		h.logger.Info("payment succeeded", "payment_intent_id", intent.ID, "amount_cents", intent.Amount)

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("decode payment_intent.payment_failed", "error", err)
			return
		}
		h.logger.Info("payment failed", "payment_intent_id", intent.ID)

	case "customer.subscription.created":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.logger.Error("decode customer.subscription.created", "error", err)
			return
		}
		h.logger.Info("subscription created", "subscription_id", sub.ID)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			h.logger.Error("decode invoice.payment_succeeded", "error", err)
			return
		}
		h.handleInvoicePaid(ctx, invoice)

	case "invoice.finalized":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			h.logger.Error("decode invoice.finalized", "error", err)
			return
		}
		// A finalized-but-open subscription invoice is deliberately left
		// alone; the receipt goes out on invoice.payment_succeeded.
		if invoice.Subscription != nil && invoice.Status == stripe.InvoiceStatusOpen {
			h.logger.Info("subscription invoice finalized, receipt deferred until paid", "invoice_id", invoice.ID)
		}

	default:
		// Unknown kinds are acknowledged and ignored for forward
		// compatibility.
		h.logger.Info("unhandled event type", "event_type", event.Type)
	}
}

func (h *Handler) handleInvoicePaid(ctx context.Context, invoice stripe.Invoice) {
	if invoice.Status != stripe.InvoiceStatusPaid || invoice.CustomerEmail == "" {
		h.logger.Info("paid invoice without receipt target", "invoice_id", invoice.ID, "status", invoice.Status)
		return
	}

	paidAt := time.Time{}
	if invoice.StatusTransitions != nil && invoice.StatusTransitions.PaidAt > 0 {
		paidAt = time.Unix(invoice.StatusTransitions.PaidAt, 0).UTC()
	}

	receipt := notification.Receipt{
		InvoiceID:       invoice.ID,
		Email:           invoice.CustomerEmail,
		AmountPaidCents: invoice.AmountPaid,
		PaidAt:          paidAt,
	}
	if err := h.notifier.SendReceipt(ctx, receipt); err != nil {
		h.logger.Error("receipt hook failed", "invoice_id", invoice.ID, "error", err)
	}
}
