package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/forgeunbound/donation_engine/internal/config"
	"github.com/forgeunbound/donation_engine/internal/embedmsg"
)

// RegisterEmbedRoutes exposes the iframe bridge surface. The config
// endpoint returns the message envelope the host script posts into the
// frame; the relay endpoint lets the frame report bridge messages back
// and applies the same origin gate the frame applies to postMessage.
func RegisterEmbedRoutes(app *fiber.App, cfg config.Config, logger *slog.Logger) {
	bridge := embedmsg.NewBridge(cfg.EmbedAllowedOrigin)

	app.Get("/api/embed/config", func(c *fiber.Ctx) error {
		return c.JSON(bridge.ConfigMessage(cfg.StripePublishableKey, embedmsg.Customization{
			Variant: "embedded",
		}))
	})

	app.Post("/api/embed/message", func(c *fiber.Ctx) error {
		msg, err := bridge.Decode(c.Body(), c.Get(fiber.HeaderOrigin))
		if err != nil {
			if errors.Is(err, embedmsg.ErrOriginMismatch) {
				return fiber.NewError(http.StatusForbidden, "origin not allowed")
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		logger.Info("embed message", "type", string(msg.Type))
		return c.JSON(fiber.Map{"received": true})
	})
}
