package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
)

type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard aggregates
// @Description Status counts, current-month approved sales, high-value count, and the most recent transactions
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.DashboardSummary
// @Security BearerAuth
// @Router /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}
