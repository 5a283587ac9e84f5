package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shopassist/internal/cache"
)

type HealthHandler struct {
	Port  string
	Cache *cache.Cache // nil when Redis is not configured
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "AI Product Recommendation API",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /api/products",
			"GET /api/products/search?q=",
			"GET /api/products/categories",
			"GET /api/products/category/:category",
			"GET /api/products/:id",
			"POST /api/recommendations",
			"GET /api/recommendations/history",
			"GET /api/health",
			"GET /metrics",
		},
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      h.Port,
	}
	if h.Cache != nil {
		body["cache"] = h.Cache.Stats()
	}
	return c.JSON(body)
}
