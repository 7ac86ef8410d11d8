package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/heartwatch-app/backend/internal/config"
	"github.com/heartwatch-app/backend/internal/handlers"
	"github.com/heartwatch-app/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	readingHandler *handlers.ReadingHandler,
	contactHandler *handlers.ContactHandler,
	alertHandler *handlers.AlertHandler,
) {
	// Public landing page.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "heartwatch",
			"status":  "ok",
		})
	})

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Everything below requires an authenticated session. The guard is
	// applied per route so it never leaks onto the public auth routes.
	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)

	api.Get("/dashboard", jwt, readingHandler.Dashboard)
	api.Post("/readings/simulate", jwt, readingHandler.Simulate)
	api.Post("/readings/upload", jwt, readingHandler.Upload)
	api.Get("/history", jwt, readingHandler.History)

	api.Get("/contacts", jwt, contactHandler.List)
	api.Post("/contacts", jwt, contactHandler.Create)
	api.Delete("/contacts/:id", jwt, contactHandler.Delete)

	api.Post("/alerts", jwt, alertHandler.Trigger)
}
