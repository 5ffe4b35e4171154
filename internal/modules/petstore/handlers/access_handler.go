package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
)

type AccessHandler struct {
	service *services.AccessService
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(service *services.AccessService) *AccessHandler {
	return &AccessHandler{service: service}
}

// List godoc
// @Summary List access assignments
// @Description List user role/permission assignments, optionally filtered by email substring
// @Tags Access
// @Produce json
// @Param search query string false "Case-insensitive email substring"
// @Success 200 {array} models.UserAccess
// @Security BearerAuth
// @Router /api/access [get]
func (h *AccessHandler) List(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"count":       len(assignments),
		"roles":       models.AssignableRoles,
		"permissions": models.AssignablePermissions,
	})
}

// Get godoc
// @Summary Get an access assignment
// @Tags Access
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.UserAccess
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/access/{id} [get]
func (h *AccessHandler) Get(c *fiber.Ctx) error {
	access, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(access)
}

// Update godoc
// @Summary Replace a user's role and permissions
// @Description Stage the submitted role and permission set on a draft and commit it as a single-record replace
// @Tags Access
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body models.UpdateAccessRequest true "New role and permission set"
// @Success 200 {object} models.UserAccess
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/access/{id} [put]
func (h *AccessHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx := c.UserContext()

	draft, err := h.service.BeginEdit(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	draft.SetRole(req.Role)
	draft.SetPermissions(req.Permissions)

	access, err := h.service.Commit(ctx, draft)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(access)
}
