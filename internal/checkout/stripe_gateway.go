package checkout

import (
	"context"
	"errors"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeGateway implements Gateway against the Stripe API. Every call gets
// a bounded timeout; expiry surfaces like any other terminal processor
// failure, never retried here.
type StripeGateway struct {
	api     *client.API
	timeout time.Duration
}

// NewStripeGateway builds a gateway from the restricted secret key.
func NewStripeGateway(secretKey string, timeout time.Duration) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StripeGateway{api: api, timeout: timeout}
}

func (g *StripeGateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

// CreateCustomer registers the donor with Stripe for receipting and
// subscription billing.
func (g *StripeGateway) CreateCustomer(ctx context.Context, in CustomerInput) (Customer, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.CustomerParams{
		Name:  stripe.String(in.Name),
		Email: stripe.String(in.Email),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(in.Address.Line1),
			City:       stripe.String(in.Address.City),
			State:      stripe.String(in.Address.State),
			PostalCode: stripe.String(in.Address.PostalCode),
			Country:    stripe.String("US"),
		},
	}
	if in.Phone != "" {
		params.Phone = stripe.String(in.Phone)
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return Customer{}, mapStripeError(err)
	}
	return Customer{ID: customer.ID}, nil
}

// CreatePaymentIntent creates the single charge for a one-time donation.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntent, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(in.AmountCents),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		Description:  stripe.String(in.Description),
		ReceiptEmail: stripe.String(in.ReceiptEmail),
	}
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return PaymentIntent{}, mapStripeError(err)
	}
	return PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// CreateProduct creates the product representing the recurring donation.
func (g *StripeGateway) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.ProductParams{Name: stripe.String(in.Name)}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	product, err := g.api.Products.New(params)
	if err != nil {
		return Product{}, mapStripeError(err)
	}
	return Product{ID: product.ID}, nil
}

// CreatePrice attaches a monthly recurring price to the product.
func (g *StripeGateway) CreatePrice(ctx context.Context, in PriceInput) (Price, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.PriceParams{
		UnitAmount: stripe.Int64(in.AmountCents),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
		Product: stripe.String(in.ProductID),
	}
	params.Context = ctx

	price, err := g.api.Prices.New(params)
	if err != nil {
		return Price{}, mapStripeError(err)
	}
	return Price{ID: price.ID}, nil
}

// CreateSubscription opens an incomplete subscription and expands the first
// invoice so its payment intent's client secret comes back in one call.
func (g *StripeGateway) CreateSubscription(ctx context.Context, in SubscriptionInput) (Subscription, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(in.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(in.PriceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		CollectionMethod: stripe.String(
			string(stripe.SubscriptionCollectionMethodChargeAutomatically),
		),
		AutomaticTax: &stripe.SubscriptionAutomaticTaxParams{
			Enabled: stripe.Bool(false),
		},
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return Subscription{}, mapStripeError(err)
	}
	if sub.LatestInvoice == nil || sub.LatestInvoice.PaymentIntent == nil {
		return Subscription{}, &GatewayError{
			StatusCode: http.StatusBadGateway,
			Message:    "subscription created without an expanded payment intent",
		}
	}
	return Subscription{
		ID:           sub.ID,
		ClientSecret: sub.LatestInvoice.PaymentIntent.ClientSecret,
	}, nil
}

// UpdateCustomerInvoiceFooter sets the thank-you footer on the customer's
// future invoices.
func (g *StripeGateway) UpdateCustomerInvoiceFooter(ctx context.Context, customerID, footer string) error {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			Footer: stripe.String(footer),
		},
	}
	params.Context = ctx

	if _, err := g.api.Customers.Update(customerID, params); err != nil {
		return mapStripeError(err)
	}
	return nil
}

func mapStripeError(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		return &GatewayError{
			Code:       string(serr.Code),
			StatusCode: serr.HTTPStatusCode,
			Message:    serr.Msg,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &GatewayError{
			StatusCode: http.StatusGatewayTimeout,
			Message:    "processor request timed out",
		}
	}
	return err
}
