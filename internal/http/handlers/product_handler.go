package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopassist/internal/domain"
	"shopassist/internal/log"
	"shopassist/internal/services"
	"shopassist/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListAll(userContext(c))
	if err != nil {
		log.Error(c, "products.list.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id"})
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.Get(userContext(c), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		log.Error(c, "products.get.error", err, map[string]any{"id": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch product")
	}
	return c.JSON(p)
}

func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	cat, ok := validate.Category(c.Params("category"))
	if !ok || cat == "" {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.JSON([]domain.Product{})
	}
	products, err := h.Catalog.ListByCategory(userContext(c), cat)
	if err != nil {
		log.Error(c, "products.category.error", err, map[string]any{"category": cat})
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(userContext(c))
	if err != nil {
		log.Error(c, "categories.list.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return c.JSON(cats)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Search query is required")
	}
	products, err := h.Catalog.Search(userContext(c), q)
	if err != nil {
		log.Error(c, "products.search.error", err, map[string]any{"q": q})
		return fail(c, fiber.StatusInternalServerError, "Failed to search products")
	}
	return c.JSON(products)
}
