package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// Minimum charge the processor accepts, in minor units.
const minAmountCents = 50

const (
	monthlyProductName = "Monthly Donation"
	invoiceFooter      = "Thank you for your continued support!"
)

var (
	// ErrInvalidAmount rejects absent or sub-minimum amounts before any
	// processor call.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrMissingFields rejects requests without donor name or email.
	ErrMissingFields = errors.New("missing required fields")
	// ErrAmountMismatch rejects payloads whose total does not equal the
	// donation amount plus the covered fee.
	ErrAmountMismatch = errors.New("amount does not match donation amount plus fee")
	// ErrCustomerRequired signals that a recurring donation cannot proceed
	// without a processor customer record.
	ErrCustomerRequired = errors.New("unable to create customer for subscription, check Stripe key permissions")
)

// Service orchestrates processor-side object creation for one submission.
// It holds no transaction state between calls; retry safety is delegated to
// the processor plus the idempotency middleware in front of the handler.
type Service struct {
	gateway    Gateway
	appName    string
	appVersion string
	logger     *slog.Logger
}

// NewService constructs a checkout service. App name and version tag every
// processor object for offline reconciliation.
func NewService(gateway Gateway, appName, appVersion string, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, appName: appName, appVersion: appVersion, logger: logger}
}

// Result is the outcome handed back to the client for confirmation.
type Result struct {
	ClientSecret   string
	SubscriptionID string
}

// CreateDonation validates the request and creates either a one-time
// payment intent or the product/price/subscription chain for monthly
// giving. Validation failures never reach the processor.
func (s *Service) CreateDonation(ctx context.Context, req CreateIntentRequest) (Result, error) {
	if req.AmountCents < minAmountCents {
		return Result{}, ErrInvalidAmount
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return Result{}, ErrMissingFields
	}
	if req.DonationAmountCents > 0 {
		fee := int64(0)
		if req.CoverProcessingFee {
			fee = req.ProcessingFeeCents
		}
		if req.AmountCents != req.DonationAmountCents+fee {
			return Result{}, ErrAmountMismatch
		}
	}

	monthly := req.DonationType == "monthly"
	donorName := fmt.Sprintf("%s %s", req.FirstName, req.LastName)

	// A customer record is mandatory for recurring billing and receipts;
	// for one-time donations its absence is tolerated.
	customer, err := s.gateway.CreateCustomer(ctx, CustomerInput{
		Name:  donorName,
		Email: req.Email,
		Phone: req.Phone,
		Address: Address{
			Line1:      req.Address,
			City:       req.City,
			State:      req.State,
			PostalCode: req.Zip,
		},
		Metadata: s.customerMetadata(req, donorName),
	})
	if err != nil {
		if monthly {
			s.logger.Error("customer creation failed for subscription", "error", err)
			return Result{}, ErrCustomerRequired
		}
		s.logger.Warn("could not create customer, continuing without one", "error", err)
		customer = Customer{}
	}

	if monthly {
		return s.createSubscription(ctx, req, customer, donorName)
	}
	return s.createOneTime(ctx, req, customer, donorName)
}

func (s *Service) createOneTime(ctx context.Context, req CreateIntentRequest, customer Customer, donorName string) (Result, error) {
	intent, err := s.gateway.CreatePaymentIntent(ctx, PaymentIntentInput{
		AmountCents:  req.AmountCents,
		CustomerID:   customer.ID,
		Description:  fmt.Sprintf("Donation from %s", donorName),
		ReceiptEmail: req.Email,
		Metadata:     s.donationMetadata(req, donorName),
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("payment intent created", "payment_intent_id", intent.ID, "amount_cents", req.AmountCents)
	return Result{ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) createSubscription(ctx context.Context, req CreateIntentRequest, customer Customer, donorName string) (Result, error) {
	product, err := s.gateway.CreateProduct(ctx, ProductInput{
		Name: monthlyProductName,
		Metadata: map[string]string{
			"processed_by": s.appName,
			"app_version":  s.appVersion,
			"donor_name":   donorName,
			"donor_email":  req.Email,
			"comment":      req.Comment,
		},
	})
	if err != nil {
		return Result{}, err
	}

	price, err := s.gateway.CreatePrice(ctx, PriceInput{
		ProductID:   product.ID,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		return Result{}, err
	}

	sub, err := s.gateway.CreateSubscription(ctx, SubscriptionInput{
		CustomerID: customer.ID,
		PriceID:    price.ID,
		Metadata:   s.donationMetadata(req, donorName),
	})
	if err != nil {
		return Result{}, err
	}

	// Receipt emails go out via the webhook; the footer update only shapes
	// future invoices and must not fail the donation.
	if err := s.gateway.UpdateCustomerInvoiceFooter(ctx, customer.ID, invoiceFooter); err != nil {
		s.logger.Warn("could not update customer invoice settings", "error", err, "customer_id", customer.ID)
	}

	s.logger.Info("monthly subscription created", "subscription_id", sub.ID, "amount_cents", req.AmountCents)
	return Result{ClientSecret: sub.ClientSecret, SubscriptionID: sub.ID}, nil
}

func (s *Service) customerMetadata(req CreateIntentRequest, donorName string) map[string]string {
	return map[string]string{
		"processed_by": s.appName,
		"app_version":  s.appVersion,
		"occupation":   req.Occupation,
		"employer":     req.Employer,
		"comment":      req.Comment,
		"donor_name":   donorName,
		"donor_email":  req.Email,
		"phone":        req.Phone,
		"address":      req.Address,
		"city":         req.City,
		"state":        req.State,
		"zip":          req.Zip,
	}
}

func (s *Service) donationMetadata(req CreateIntentRequest, donorName string) map[string]string {
	return map[string]string{
		"processed_by":         s.appName,
		"app_version":          s.appVersion,
		"donation_type":        req.DonationType,
		"donor_name":           donorName,
		"donor_email":          req.Email,
		"donor_phone":          req.Phone,
		"donor_address":        req.Address,
		"donor_city":           req.City,
		"donor_state":          req.State,
		"donor_zip":            req.Zip,
		"cover_processing_fee": strconv.FormatBool(req.CoverProcessingFee),
		"occupation":           req.Occupation,
		"employer":             req.Employer,
		"comment":              req.Comment,
	}
}
