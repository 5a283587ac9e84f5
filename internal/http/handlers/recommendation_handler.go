package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopassist/internal/domain"
	"shopassist/internal/log"
	"shopassist/internal/services"
	"shopassist/internal/validate"
)

const historyLimit = 10

type RecommendationHandler struct {
	Recs   *services.RecommendationService
	Report HistoryReport
}

type recommendRequest struct {
	Query      string             `json:"query"`
	Category   string             `json:"category"`
	PriceRange *domain.PriceRange `json:"priceRange"`
}

func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req recommendRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	query, err := validate.Query(req.Query)
	if errors.Is(err, validate.ErrQueryTooLong) {
		return fail(c, fiber.StatusBadRequest, "Query is too long")
	}
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Query is required")
	}
	category, ok := validate.Category(req.Category)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return fail(c, fiber.StatusBadRequest, "Category is too long")
	}

	res, err := h.Recs.Recommend(userContext(c), domain.Constraints{
		Query:      query,
		Category:   category,
		PriceRange: req.PriceRange,
	})
	switch {
	case err == nil:
	case domain.IsKind(err, domain.KindValidation):
		return fail(c, fiber.StatusBadRequest, "Query is required")
	case domain.IsKind(err, domain.KindStoreUnavailable):
		log.Error(c, "recommend.products.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products")
	default:
		log.Error(c, "recommend.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	log.Info(c, "recommend.served", map[string]any{
		"query": query,
		"count": len(res.Recommendations),
	})
	return c.JSON(res)
}

func (h *RecommendationHandler) History(c *fiber.Ctx) error {
	top, err := h.Report.TopQueries(userContext(c), historyLimit)
	if err != nil {
		log.Error(c, "history.list.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch history")
	}
	return c.JSON(top)
}
