package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealthRoutes adds the liveness endpoint the embed script polls
// before mounting the form.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		redisStatus := "ok"
		status := http.StatusOK

		if d.Cache != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		body := fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if d.Cache != nil {
			body["redis"] = redisStatus
		}
		if status != http.StatusOK {
			body["status"] = "DEGRADED"
		}
		return c.Status(status).JSON(body)
	})
}
