package submission

import (
	"context"
	"errors"
	"fmt"
)

// Confirmer completes a payment intent from its client secret. The real
// implementation is the processor's hosted card widget, which owns the
// card data end to end; this boundary is never re-implemented here.
type Confirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, billing BillingDetails) error
}

// BillingDetails accompany the hosted confirmation call.
type BillingDetails struct {
	Name    string
	Email   string
	Phone   string
	Address Address
}

// Address is the structured billing address handed to the processor.
type Address struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// ErrNotSubmittable means the form gate is closed: amount, card, or donor
// info is incomplete, or a request is already in flight.
var ErrNotSubmittable = errors.New("donation form is not ready to submit")

// ErrTimeout marks an outbound call that exceeded its bounded timeout. It
// is terminal for the attempt like any other failure; no automatic retry.
var ErrTimeout = errors.New("payment request timed out")

// ServerRejectedError carries the transaction endpoint's message for a
// non-success HTTP status.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	return fmt.Sprintf("server rejected donation (%d): %s", e.StatusCode, e.Message)
}

// CardDeclinedError carries the processor's human-readable message from a
// failed confirmation.
type CardDeclinedError struct {
	Message string
}

func (e *CardDeclinedError) Error() string {
	return e.Message
}
