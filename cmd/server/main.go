// Package main is the entry point for the sandbox checkout server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"log"
	"time"

	"dropin/internal/config"
	"dropin/internal/gateway"
	"dropin/internal/handlers"
	"dropin/internal/repositories"
	"dropin/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	secret := []byte(config.GetEnv("CLIENT_TOKEN_SECRET", ""))
	if len(secret) == 0 {
		log.Fatal("CLIENT_TOKEN_SECRET is required")
	}

	opts := handlers.CheckoutHandlerOptions{
		Secret:   secret,
		TokenTTL: time.Duration(config.GetIntEnv("CLIENT_TOKEN_TTL_MINUTES", 60)) * time.Minute,
	}

	// IN_MEMORY skips PostgreSQL and Redis for local sandbox runs.
	if config.GetBoolEnv("IN_MEMORY", false) {
		log.Println("Running with in-memory vault and duplicate detection")
		opts.Vault = repositories.NewMemoryVaultedCardRepository()
		opts.Duplicates = gateway.NewMemoryDuplicateChecker(24 * time.Hour)
	} else {
		if err := repositories.InitDB(); err != nil {
			log.Fatalf("Failed to initialize databases: %v", err)
		}
		defer repositories.CloseDB()

		opts.Vault = repositories.NewVaultedCardRepository(repositories.DB)
		opts.Duplicates = gateway.NewRedisDuplicateChecker(repositories.RedisClient, 24*time.Hour)
	}

	// Tokenize through Stripe when a key is configured, the built-in
	// sandbox tokenizer otherwise.
	if stripeKey := config.GetEnv("STRIPE_SECRET_KEY", ""); stripeKey != "" {
		opts.Tokenizer = gateway.NewStripeTokenizer(stripeKey)
	}

	checkoutHandler := handlers.NewCheckoutHandler(opts)

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Api-Key",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/checkout/session", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("SESSION_RATE_LIMIT", 30),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	routes.SetupRoutes(app, checkoutHandler, routes.RouteOptions{
		Secret:     secret,
		APIKeyHash: config.GetEnv("MERCHANT_API_KEY_HASH", ""),
	})

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
