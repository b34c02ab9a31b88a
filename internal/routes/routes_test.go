package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/forgeunbound/donation_engine/internal/checkout"
	"github.com/forgeunbound/donation_engine/internal/config"
	"github.com/forgeunbound/donation_engine/internal/logging"
)

type stubGateway struct{}

func (stubGateway) CreateCustomer(ctx context.Context, in checkout.CustomerInput) (checkout.Customer, error) {
	return checkout.Customer{ID: "cus_test"}, nil
}

func (stubGateway) CreatePaymentIntent(ctx context.Context, in checkout.PaymentIntentInput) (checkout.PaymentIntent, error) {
	return checkout.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (stubGateway) CreateProduct(ctx context.Context, in checkout.ProductInput) (checkout.Product, error) {
	return checkout.Product{ID: "prod_test"}, nil
}

func (stubGateway) CreatePrice(ctx context.Context, in checkout.PriceInput) (checkout.Price, error) {
	return checkout.Price{ID: "price_test"}, nil
}

func (stubGateway) CreateSubscription(ctx context.Context, in checkout.SubscriptionInput) (checkout.Subscription, error) {
	return checkout.Subscription{ID: "sub_test", ClientSecret: "sub_test_secret"}, nil
}

func (stubGateway) UpdateCustomerInvoiceFooter(ctx context.Context, customerID, footer string) error {
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppName:              "DonationEngineTest",
		AppVersion:           "test",
		StripePublishableKey: "pk_test_abc",
		StripeRestrictedKey:  "sk_test_abc",
		CampaignConfigDir:    t.TempDir(),
		EmbedAllowedOrigin:   "https://host.example.com",
		IdempotencyTTL:       time.Minute,
		ProcessorTimeout:     5 * time.Second,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard(), Gateway: stubGateway{}}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return decoded
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	if body["status"] != "OK" {
		t.Fatalf("expected status OK got %v", body["status"])
	}
	if body["timestamp"] == nil {
		t.Fatal("expected timestamp in health response")
	}
}

func TestStripeKeyEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/stripe-key", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body := decodeBody(t, resp.Body)
	if body["publishableKey"] != "pk_test_abc" {
		t.Fatalf("expected publishable key, got %v", body["publishableKey"])
	}
}

func TestStatusEndpointReportsTestMode(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body := decodeBody(t, resp.Body)
	if body["configured"] != true {
		t.Fatalf("expected configured=true got %v", body["configured"])
	}
	if body["testMode"] != true {
		t.Fatalf("expected testMode=true got %v", body["testMode"])
	}
}

func TestCreatePaymentIntentWiredThroughStack(t *testing.T) {
	app := newTestApp(t)

	payload := `{
		"amount": 5175,
		"donationAmount": 5000,
		"processingFee": 175,
		"donationType": "one_time",
		"coverProcessingFee": true,
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"address": "1 Analytical Way",
		"city": "Austin",
		"state": "TX",
		"zip": "78701",
		"occupation": "Engineer",
		"employer": "Self"
	}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/create-payment-intent", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	if body["clientSecret"] != "pi_test_secret" {
		t.Fatalf("expected client secret got %v", body["clientSecret"])
	}
}

func TestCampaignConfigRoundTrip(t *testing.T) {
	app := newTestApp(t)

	cfg := `{"name":"test-campaign","fullName":"Test Campaign Fund","defaultAmounts":[25,50],"maxContribution":3300}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/save-config/test-campaign", strings.NewReader(cfg))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("save config: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on save got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp2, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/config/test-campaign", nil))
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on load got %d", resp2.StatusCode)
	}
	body := decodeBody(t, resp2.Body)
	if body["fullName"] != "Test Campaign Fund" {
		t.Fatalf("expected stored fullName got %v", body["fullName"])
	}
}

func TestEmbedConfigCarriesPublishableKey(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/embed/config", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	if body["type"] != "config" {
		t.Fatalf("expected config message got %v", body["type"])
	}
	cfg, ok := body["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected config object got %v", body["config"])
	}
	if cfg["stripeKey"] != "pk_test_abc" {
		t.Fatalf("expected publishable key in config got %v", cfg["stripeKey"])
	}
}

func TestEmbedMessageEnforcesConfiguredOrigin(t *testing.T) {
	app := newTestApp(t)
	payload := `{"type":"widget_resize","height":900}`

	post := func(origin string) int {
		req := httptest.NewRequest(fiber.MethodPost, "/api/embed/message", strings.NewReader(payload))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		if origin != "" {
			req.Header.Set(fiber.HeaderOrigin, origin)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := post("https://host.example.com"); status != fiber.StatusOK {
		t.Fatalf("allowed origin: expected 200 got %d", status)
	}
	if status := post("https://evil.example.com"); status != fiber.StatusForbidden {
		t.Fatalf("foreign origin: expected 403 got %d", status)
	}
	if status := post(""); status != fiber.StatusForbidden {
		t.Fatalf("missing origin: expected 403 got %d", status)
	}
}

func TestWebhookUnconfiguredSecret(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/webhook", strings.NewReader("{}"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unconfigured webhook got %d", resp.StatusCode)
	}
}
