package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the transaction endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a checkout handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateIntent handles POST /api/create-payment-intent. Errors are always
// returned as {"error": message} with a status reflecting the failure
// class so the form can surface them inline.
func (h *Handler) CreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	h.logger.Info("creating payment intent",
		"amount_cents", req.AmountCents,
		"donation_type", req.DonationType,
		"has_email", req.Email != "",
	)

	result, err := h.service.CreateDonation(c.UserContext(), req)
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("create donation failed", "error", err)
		} else {
			h.logger.Info("donation request rejected", "error", err)
		}
		return c.Status(status).JSON(ErrorResponse{Error: msg})
	}

	return c.JSON(CreateIntentResponse{
		ClientSecret:   result.ClientSecret,
		SubscriptionID: result.SubscriptionID,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, ErrMissingFields):
		return http.StatusBadRequest, "Missing required fields"
	case errors.Is(err, ErrAmountMismatch):
		return http.StatusBadRequest, "Amount mismatch"
	case errors.Is(err, ErrCustomerRequired):
		return http.StatusBadRequest, "Unable to create customer for subscription. Please check your Stripe key permissions."
	}

	var gerr *GatewayError
	if errors.As(err, &gerr) {
		status := gerr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, gerr.Error()
	}

	return http.StatusInternalServerError, err.Error()
}
