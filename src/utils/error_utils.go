// error_utils.go
package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Quiznator-Backend/src/models"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

func handleKind(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Kind:    kind,
		Message: message,
	})
}

// HandleServiceError maps the error kinds of the services onto HTTP statuses.
func HandleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return handleKind(c, fiber.StatusNotFound, models.KindNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return handleKind(c, fiber.StatusForbidden, models.KindForbidden, err.Error())
	case errors.Is(err, models.ErrInvalidRequest):
		return handleKind(c, fiber.StatusBadRequest, models.KindInvalidRequest, err.Error())
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return handleKind(c, fiber.StatusInternalServerError, models.KindInternal, "Internal server error")
}
