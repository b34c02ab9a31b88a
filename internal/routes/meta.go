package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forgeunbound/donation_engine/internal/config"
)

// RegisterMetaRoutes exposes the publishable key and processor status the
// widget needs before it can render card fields.
func RegisterMetaRoutes(app *fiber.App, cfg config.Config) {
	app.Get("/api/stripe-key", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"publishableKey": cfg.StripePublishableKey})
	})

	app.Get("/api/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"configured": cfg.StripeConfigured(),
			"testMode":   cfg.StripeTestMode(),
			"version":    cfg.AppVersion,
		})
	})
}
