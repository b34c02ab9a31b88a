package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/forgeunbound/donation_engine/internal/campaign"
	"github.com/forgeunbound/donation_engine/internal/checkout"
	"github.com/forgeunbound/donation_engine/internal/config"
	"github.com/forgeunbound/donation_engine/internal/middleware"
	"github.com/forgeunbound/donation_engine/internal/notification"
	"github.com/forgeunbound/donation_engine/internal/webhook"
)

// Deps aggregates shared dependencies required to wire routes. Gateway and
// Notifier default to the real implementations when nil; tests inject
// fakes.
type Deps struct {
	Cfg      config.Config
	Cache    *redis.Client
	Logger   *slog.Logger
	Gateway  checkout.Gateway
	Notifier notification.Notifier
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)
	RegisterMetaRoutes(app, d.Cfg)
	RegisterEmbedRoutes(app, d.Cfg, d.Logger)

	gateway := d.Gateway
	if gateway == nil {
		gateway = checkout.NewStripeGateway(d.Cfg.StripeRestrictedKey, d.Cfg.ProcessorTimeout)
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	checkoutSvc := checkout.NewService(gateway, d.Cfg.AppName, d.Cfg.AppVersion, d.Logger)
	checkoutHandler := checkout.NewHandler(checkoutSvc, d.Logger)

	// The intent endpoint is the only one worth deduplicating; the form
	// sends a fresh submission identifier per attempt.
	intentHandlers := []fiber.Handler{}
	if d.Cache != nil {
		intentHandlers = append(intentHandlers, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	intentHandlers = append(intentHandlers, checkoutHandler.CreateIntent)
	app.Post("/api/create-payment-intent", intentHandlers...)

	webhookHandler := webhook.NewHandler(d.Cfg.StripeWebhookSecret, notifier, d.Logger)
	app.Post("/webhook", webhookHandler.Receive)

	campaignStore := campaign.NewFileStore(d.Cfg.CampaignConfigDir)
	campaignHandler := campaign.NewHandler(campaignStore, d.Logger)
	app.Get("/api/config/:campaignId", campaignHandler.GetConfig)
	app.Post("/api/save-config/:campaignId", campaignHandler.SaveConfig)

	return nil
}
