// Package routes defines the API routing configuration. It wires the
// checkout session handlers to their paths and applies the auth middleware.
package routes

import (
	"dropin/internal/handlers"
	"dropin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RouteOptions carries the credentials the route guards need. An empty
// APIKeyHash disables API key checks, for local sandbox runs.
type RouteOptions struct {
	Secret     []byte
	APIKeyHash string
}

func SetupRoutes(app *fiber.App, h *handlers.CheckoutHandler, opts RouteOptions) {
	app.Get("/health", handlers.HealthCheck)

	apiKeyAuth := passthrough
	if opts.APIKeyHash != "" {
		apiKeyAuth = middleware.APIKeyAuth(opts.APIKeyHash)
	}

	checkout := app.Group("/api/checkout")
	checkout.Post("/session", apiKeyAuth, h.CreateSession)

	session := checkout.Group("/session/:id", middleware.ClientTokenAuth(opts.Secret))
	session.Post("/input", h.Input)
	session.Post("/focus", h.Focus)
	session.Post("/blur", h.Blur)
	session.Post("/submit", h.Submit)
	session.Get("/state", h.State)
	session.Delete("/", h.EndSession)

	app.Get("/api/vault/cards", apiKeyAuth, h.VaultedCards)
}

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}
