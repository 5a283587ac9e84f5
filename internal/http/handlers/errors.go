package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopassist/internal/log"
)

// ErrorHandler is the app-wide fiber error handler. Internal details are
// logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// NotFound answers any route nothing else matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Endpoint not found",
		"path":  c.OriginalURL(),
	})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// userContext derives the service context for this request, tagged with
// the request id so service logs correlate with access logs.
func userContext(c *fiber.Ctx) context.Context {
	rid, _ := c.Locals("requestid").(string)
	return log.WithRequestID(c.UserContext(), rid)
}
