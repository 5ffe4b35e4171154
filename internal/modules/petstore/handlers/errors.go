package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// branch renders the same shape: {"error": "..."}.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		permissionErr *services.PermissionError
		conflictErr   *services.ConflictError
		transportErr  *services.TransportError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &permissionErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": permissionErr.Error()})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflictErr.Error()})
	case errors.As(err, &transportErr):
		utils.LogError("❌ Store call failed", transportErr, map[string]interface{}{"op": transportErr.Op})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "store unavailable, please retry"})
	default:
		utils.LogError("❌ Unexpected error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
