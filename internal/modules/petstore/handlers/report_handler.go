package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Purchases godoc
// @Summary Consult purchase records
// @Description List purchases filtered by supplier and an inclusive date range, with aggregates over the filtered set
// @Tags Reports
// @Produce json
// @Param counterparty query string false "Exact supplier name"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	records, summary, err := h.service.Purchases(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"records": records,
		"summary": summary,
	})
}

// Sales godoc
// @Summary Consult sale records
// @Description List sales filtered by client and an inclusive date range, with aggregates over the filtered set
// @Tags Reports
// @Produce json
// @Param counterparty query string false "Exact client name"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	records, summary, err := h.service.Sales(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"records": records,
		"summary": summary,
	})
}

func parseReportFilter(c *fiber.Ctx) (services.ReportFilter, error) {
	filter := services.ReportFilter{
		Counterparty: c.Query("counterparty"),
	}

	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		filter.StartDate = &start
	}

	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		// The whole end day is in range.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, nil
}
