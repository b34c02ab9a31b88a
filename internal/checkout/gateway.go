package checkout

import (
	"context"
	"fmt"
)

// Gateway is the connector to the external payment processor. Each method
// maps to one processor-side object creation; the service owns the
// orchestration order.
type Gateway interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (Customer, error)
	CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntent, error)
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	CreatePrice(ctx context.Context, in PriceInput) (Price, error)
	CreateSubscription(ctx context.Context, in SubscriptionInput) (Subscription, error)
	UpdateCustomerInvoiceFooter(ctx context.Context, customerID, footer string) error
}

// CustomerInput carries the donor identity attached to the processor-side
// customer record.
type CustomerInput struct {
	Name     string
	Email    string
	Phone    string
	Address  Address
	Metadata map[string]string
}

// Address is the donor's structured billing address. Country is always US;
// this system takes federal-election contributions only.
type Address struct {
	Line1      string
	City       string
	State      string
	PostalCode string
}

// Customer is the processor-side customer reference.
type Customer struct {
	ID string
}

// PaymentIntentInput describes a single one-time charge.
type PaymentIntentInput struct {
	AmountCents  int64
	CustomerID   string // empty when customer creation was tolerated to fail
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentIntent carries the client secret the browser needs to confirm the
// charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// ProductInput names the recurring donation product.
type ProductInput struct {
	Name     string
	Metadata map[string]string
}

// Product is the processor-side product reference.
type Product struct {
	ID string
}

// PriceInput defines a monthly recurring price on a product.
type PriceInput struct {
	ProductID   string
	AmountCents int64
}

// Price is the processor-side price reference.
type Price struct {
	ID string
}

// SubscriptionInput creates an incomplete subscription whose first invoice
// carries the payment intent to confirm.
type SubscriptionInput struct {
	CustomerID string
	PriceID    string
	Metadata   map[string]string
}

// Subscription bundles the subscription identifier with the client secret
// of the first invoice's payment intent.
type Subscription struct {
	ID           string
	ClientSecret string
}

// GatewayError is a processor-side failure. StatusCode mirrors the
// processor's reported HTTP status when available, zero otherwise.
type GatewayError struct {
	Code       string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("Stripe error (%s): %s", e.Code, e.Message)
}
