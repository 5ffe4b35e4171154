package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
)

type TransactionHandler struct {
	service *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create godoc
// @Summary Record a transaction
// @Description Record a new sale or purchase. The total is derived server-side and the record starts pending.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body models.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req models.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	transaction, err := h.service.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

// List godoc
// @Summary List transactions
// @Description List transactions most recent first, optionally filtered by status
// @Tags Transactions
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	status := models.TransactionStatus(c.Query("status"))

	transactions, err := h.service.List(c.UserContext(), status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// Get godoc
// @Summary Get a transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	transaction, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(transaction)
}

// Update godoc
// @Summary Edit a pending transaction
// @Description Apply a partial edit. Only pending transactions can be edited; the total is recomputed.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body models.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	transaction, err := h.service.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(transaction)
}

// SetStatus godoc
// @Summary Approve or reject a transaction
// @Description Move a pending transaction into a terminal state. Admin only; terminal records cannot change again.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body models.SetStatusRequest true "Target status"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions/{id}/status [patch]
func (h *TransactionHandler) SetStatus(c *fiber.Ctx) error {
	var req models.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, _ := c.Locals("role").(string)

	transaction, err := h.service.SetStatus(c.UserContext(), c.Params("id"), req.Status, role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(transaction)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Transaction deleted",
	})
}

// Stats godoc
// @Summary Per-status transaction counts
// @Tags Transactions
// @Produce json
// @Success 200 {object} models.StatusCounts
// @Security BearerAuth
// @Router /api/transactions/stats [get]
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.service.StatusCounts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(counts)
}
