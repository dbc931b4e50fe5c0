package handler

import (
	"errors"

	"go-farm-ledger/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

// Helper to parse UUID from a route param
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps service errors onto HTTP statuses. Sentinels carry the
// status, the wrapped message carries the user-facing text.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrPermissionDenied):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
