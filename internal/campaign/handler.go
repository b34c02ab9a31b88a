package campaign

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes campaign config read/write endpoints. The admin UI that
// edits these lives elsewhere; this is just its storage contract.
type Handler struct {
	store  *FileStore
	logger *slog.Logger
}

// NewHandler constructs a campaign config handler.
func NewHandler(store *FileStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetConfig handles GET /api/config/:campaignId.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.store.Load(c.Params("campaignId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "campaign config not found")
		case errors.Is(err, ErrInvalidID):
			return fiber.NewError(http.StatusBadRequest, "invalid campaign id")
		default:
			h.logger.Error("load campaign config", "error", err)
			return fiber.NewError(http.StatusInternalServerError, "failed to load config")
		}
	}
	return c.JSON(cfg)
}

// SaveConfig handles POST /api/save-config/:campaignId.
func (h *Handler) SaveConfig(c *fiber.Ctx) error {
	campaignID := c.Params("campaignId")

	var cfg Config
	if err := c.BodyParser(&cfg); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.Save(campaignID, cfg); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Config missing required fields"})
		case errors.Is(err, ErrInvalidID):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
		default:
			h.logger.Error("save campaign config", "campaign_id", campaignID, "error", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save config: " + err.Error()})
		}
	}

	h.logger.Info("campaign config saved", "campaign_id", campaignID)
	return c.JSON(fiber.Map{"success": true, "message": "Config saved successfully"})
}
