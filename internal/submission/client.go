package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/forgeunbound/donation_engine/internal/donation"
	"github.com/forgeunbound/donation_engine/internal/money"
)

// Confirmation is the terminal success outcome of one submission.
type Confirmation struct {
	TotalCents     money.Cents
	Frequency      donation.Frequency
	SubscriptionID string
}

// Client drives the donation submission pipeline: serialize the intent,
// obtain a client secret from the transaction endpoint, then hand the
// secret to the hosted confirmation call. No step is retried; every
// failure is terminal for the attempt and leaves the intent editable.
type Client struct {
	endpointURL string
	httpClient  *http.Client
	confirmer   Confirmer
	logger      *slog.Logger
}

// NewClient builds a submission client. endpointURL is the full URL of the
// create-payment-intent endpoint; timeout bounds that round trip.
func NewClient(endpointURL string, confirmer Confirmer, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
		confirmer:   confirmer,
		logger:      logger,
	}
}

type intentResponse struct {
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
	Error          string `json:"error"`
}

// Submit runs one submission attempt, folding lifecycle events into the
// intent as it goes. The intent must be submittable; a submit while a
// request is in flight fails fast without touching the network.
func (c *Client) Submit(ctx context.Context, intent *donation.Intent) (Confirmation, error) {
	if !intent.CanSubmit() {
		return Confirmation{}, ErrNotSubmittable
	}

	*intent = intent.Apply(donation.SubmitStarted{})
	payload := intent.Payload()
	submissionID := uuid.NewString()

	c.logger.Info("submitting donation",
		"submission_id", submissionID,
		"amount_cents", payload.AmountCents,
		"donation_type", payload.DonationType,
	)

	resp, err := c.createIntent(ctx, payload, submissionID)
	if err != nil {
		return Confirmation{}, c.fail(intent, err)
	}

	billing := billingDetailsFrom(payload)
	if err := c.confirmer.ConfirmCardPayment(ctx, resp.ClientSecret, billing); err != nil {
		if timedOut(err) {
			return Confirmation{}, c.fail(intent, ErrTimeout)
		}
		return Confirmation{}, c.fail(intent, &CardDeclinedError{Message: err.Error()})
	}

	*intent = intent.Apply(donation.SubmitSucceeded{})
	c.logger.Info("donation confirmed", "submission_id", submissionID)

	return Confirmation{
		TotalCents:     money.Cents(payload.AmountCents),
		Frequency:      donation.Frequency(payload.DonationType),
		SubscriptionID: resp.SubscriptionID,
	}, nil
}

func (c *Client) createIntent(ctx context.Context, payload donation.Payload, submissionID string) (intentResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return intentResponse{}, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return intentResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", submissionID)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if timedOut(err) {
			return intentResponse{}, ErrTimeout
		}
		return intentResponse{}, fmt.Errorf("call transaction endpoint: %w", err)
	}
	defer httpResp.Body.Close()

	var decoded intentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&decoded); err != nil && httpResp.StatusCode < 300 {
		return intentResponse{}, fmt.Errorf("decode response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		msg := decoded.Error
		if msg == "" {
			msg = "Failed to create payment intent"
		}
		return intentResponse{}, &ServerRejectedError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	if decoded.ClientSecret == "" {
		return intentResponse{}, &ServerRejectedError{StatusCode: httpResp.StatusCode, Message: "response missing client secret"}
	}
	return decoded, nil
}

// fail releases the loading lock with the failure message so the donor can
// correct input and resubmit.
func (c *Client) fail(intent *donation.Intent, err error) error {
	c.logger.Info("donation submission failed", "error", err)
	*intent = intent.Apply(donation.SubmitFailed{Message: err.Error()})
	return err
}

func billingDetailsFrom(payload donation.Payload) BillingDetails {
	return BillingDetails{
		Name:  fmt.Sprintf("%s %s", payload.FirstName, payload.LastName),
		Email: payload.Email,
		Phone: payload.Phone,
		Address: Address{
			Line1:      payload.Address,
			City:       payload.City,
			State:      payload.State,
			PostalCode: payload.Zip,
			Country:    "US",
		},
	}
}

func timedOut(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
