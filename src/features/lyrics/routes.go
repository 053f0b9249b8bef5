package lyrics

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers lyrics routes
func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api/v1")

	api.Get("/lyrics", handler.GetCachedLyrics)
	api.Post("/lyrics", handler.ResolveLyrics)
	api.Get("/lyrics/history", handler.GetHistory)
}
