// Package middleware provides HTTP middleware for the sandbox checkout
// server: merchant API key verification for session creation and client
// token validation for session use.
package middleware

import (
	"log"
	"strings"

	"dropin/internal/gateway"

	"github.com/gofiber/fiber/v2"
)

// LocalsClaims is the context key the client token claims are stored under.
const LocalsClaims = "clientTokenClaims"

// APIKeyAuth verifies the X-Api-Key header against the merchant's stored
// bcrypt hash.
func APIKeyAuth(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Api-Key")
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing api key"})
		}
		if err := gateway.VerifyAPIKey(keyHash, key); err != nil {
			log.Printf("API key rejected: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid api key"})
		}
		return c.Next()
	}
}

// ClientTokenAuth validates the Bearer client token and stores its claims in
// the request context.
func ClientTokenAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := gateway.ParseClientToken(secret, tokenString)
		if err != nil {
			log.Printf("Client token validation error: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid client token"})
		}

		c.Locals(LocalsClaims, claims)
		return c.Next()
	}
}

// ClaimsFromContext extracts the client token claims stored by
// ClientTokenAuth, or nil.
func ClaimsFromContext(c *fiber.Ctx) *gateway.ClientTokenClaims {
	claims, _ := c.Locals(LocalsClaims).(*gateway.ClientTokenClaims)
	return claims
}
