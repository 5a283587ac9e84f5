package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopassist/internal/config"
	"shopassist/internal/log"
	"shopassist/internal/metrics"
)

const (
	bodyLimit         = 1 << 20 // 1 MiB
	globalRatePerMin  = 60
	recommendRatePerM = 20
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "shopassist",
		BodyLimit:    bodyLimit,
		UnescapePath: true,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(corsMiddleware(cfg.Origins()))
	app.Use(limiter.New(limiter.Config{
		Max:        globalRatePerMin,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/api/health" || p == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.global.hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	}))

	Register(app, deps)
	app.Use(NotFound)
	return app
}

// Register mounts the API routes on app.
func Register(app *fiber.App, deps *Deps) {
	app.Get("/", deps.HealthHandler.Root)
	app.Get("/api/health", deps.HealthHandler.Health)
	app.Get("/metrics", metrics.Handler())

	products := app.Group("/api/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/search", deps.ProductHandler.Search)
	products.Get("/categories", deps.ProductHandler.Categories)
	products.Get("/category/:category", deps.ProductHandler.ByCategory)
	products.Get("/:id", deps.ProductHandler.Detail)

	recs := app.Group("/api/recommendations")
	recs.Post("/", limiter.New(limiter.Config{
		Max:        recommendRatePerM,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|recommend"
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.recommend.hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	}), deps.RecommendationHandler.Recommend)
	recs.Get("/history", deps.RecommendationHandler.History)
}

func corsMiddleware(origins []string) fiber.Handler {
	joined := strings.Join(origins, ",")
	if joined == "" || joined == "*" {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     joined,
		AllowCredentials: true,
	})
}
