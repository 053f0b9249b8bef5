package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes exposes the Prometheus registry on the Fiber app.
func RegisterRoutes(app *fiber.App) {
	Register()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
