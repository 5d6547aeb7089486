package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// NewApp assembles the fiber application with the full middleware chain and
// every route registered.
func NewApp(handler *Handler, config AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "wavelength",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	allowOrigins := strings.TrimSpace(config.CORSAllowOrigins)
	if allowOrigins == "" {
		allowOrigins = defaultCORSAllowList
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	}))
	app.Use(handler.ObserveRequests)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: allowOrigins}))
	app.Use(compress.New())
	if config.RateLimitRPS > 0 {
		limiter := newClientRateLimiter(rate.Limit(config.RateLimitRPS), config.RateLimitBurst)
		app.Use(handler.RateLimit(limiter))
	}

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
