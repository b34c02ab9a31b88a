package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgeunbound/donation_engine/internal/donation"
	"github.com/forgeunbound/donation_engine/internal/logging"
	"github.com/forgeunbound/donation_engine/internal/money"
)

type fakeConfirmer struct {
	err     error
	calls   int
	secret  string
	billing BillingDetails
}

func (f *fakeConfirmer) ConfirmCardPayment(_ context.Context, clientSecret string, billing BillingDetails) error {
	f.calls++
	f.secret = clientSecret
	f.billing = billing
	return f.err
}

func submittableIntent() donation.Intent {
	donor := donation.DonorInfo{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "555-0100",
		Address:    "12 Analytical St",
		City:       "Springfield",
		State:      "IL",
		Zip:        "62701",
		Occupation: "Engineer",
		Employer:   "Self",
	}
	return donation.New([]money.Cents{2500, 5000, 10000}, 350000).
		Apply(donation.PresetSelected{Amount: 5000}).
		Apply(donation.DonorChanged{Donor: donor}).
		Apply(donation.CardChanged{State: donation.CardState{Complete: true}})
}

func TestSubmitSuccess(t *testing.T) {
	var received donation.Payload
	var idempotencyKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idempotencyKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"clientSecret": "pi_secret_1"})
	}))
	defer server.Close()

	confirmer := &fakeConfirmer{}
	client := NewClient(server.URL, confirmer, time.Second, logging.Discard())
	intent := submittableIntent()

	conf, err := client.Submit(context.Background(), &intent)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if received.AmountCents != 5175 || received.DonationAmountCents != 5000 || received.ProcessingFeeCents != 175 {
		t.Fatalf("payload = %+v", received)
	}
	if received.AmountCents != received.DonationAmountCents+received.ProcessingFeeCents {
		t.Fatal("cents invariant violated on the wire")
	}
	if idempotencyKey == "" {
		t.Fatal("submission must carry an idempotency key")
	}

	if confirmer.calls != 1 || confirmer.secret != "pi_secret_1" {
		t.Fatalf("confirmer calls=%d secret=%q", confirmer.calls, confirmer.secret)
	}
	if confirmer.billing.Name != "Ada Lovelace" || confirmer.billing.Address.Country != "US" {
		t.Fatalf("billing = %+v", confirmer.billing)
	}

	if conf.TotalCents != 5175 || conf.Frequency != donation.FrequencyOneTime {
		t.Fatalf("confirmation = %+v", conf)
	}
	if intent.Phase != donation.PhaseSucceeded {
		t.Fatalf("intent phase = %d, want succeeded", intent.Phase)
	}
	if conf.TotalCents.String() != "$51.75" {
		t.Fatalf("display total = %q", conf.TotalCents.String())
	}
}

func TestSubmitServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid amount"})
	}))
	defer server.Close()

	confirmer := &fakeConfirmer{}
	client := NewClient(server.URL, confirmer, time.Second, logging.Discard())
	intent := submittableIntent()

	_, err := client.Submit(context.Background(), &intent)
	var rejected *ServerRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ServerRejectedError, got %v", err)
	}
	if rejected.StatusCode != http.StatusBadRequest || rejected.Message != "Invalid amount" {
		t.Fatalf("rejection = %+v", rejected)
	}

	if confirmer.calls != 0 {
		t.Fatal("confirmation must not run after a server rejection")
	}
	if intent.Phase != donation.PhaseEditing {
		t.Fatal("failure must release the loading lock")
	}
	if !intent.CanSubmit() {
		t.Fatal("intent must be resubmittable after failure")
	}
}

func TestSubmitCardDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"clientSecret": "pi_secret_2"})
	}))
	defer server.Close()

	confirmer := &fakeConfirmer{err: errors.New("Your card was declined.")}
	client := NewClient(server.URL, confirmer, time.Second, logging.Discard())
	intent := submittableIntent()

	_, err := client.Submit(context.Background(), &intent)
	var declined *CardDeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected CardDeclinedError, got %v", err)
	}
	if declined.Message != "Your card was declined." {
		t.Fatalf("message = %q", declined.Message)
	}

	if intent.Phase != donation.PhaseEditing || intent.LastError == "" {
		t.Fatalf("intent = phase %d lastError %q", intent.Phase, intent.LastError)
	}
}

func TestSubmitTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeConfirmer{}, 20*time.Millisecond, logging.Discard())
	intent := submittableIntent()

	_, err := client.Submit(context.Background(), &intent)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if intent.Phase != donation.PhaseEditing {
		t.Fatal("timeout must release the loading lock")
	}
}

func TestSubmitRefusesWhenNotReady(t *testing.T) {
	client := NewClient("http://127.0.0.1:0/api/create-payment-intent", &fakeConfirmer{}, time.Second, logging.Discard())

	intent := donation.New([]money.Cents{2500}, 350000)
	if _, err := client.Submit(context.Background(), &intent); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("expected ErrNotSubmittable, got %v", err)
	}

	// In-flight lock: a submitting intent is not submittable again.
	inflight := submittableIntent().Apply(donation.SubmitStarted{})
	if _, err := client.Submit(context.Background(), &inflight); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("expected ErrNotSubmittable while in flight, got %v", err)
	}
}
