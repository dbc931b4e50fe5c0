package handler

import (
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AccountingHandler struct {
	service service.AccountingService
}

func NewAccountingHandler(s service.AccountingService) *AccountingHandler {
	return &AccountingHandler{service: s}
}

// CreateTransaction appends an income/expense entry
// POST /api/v1/accounting/transactions
func (h *AccountingHandler) CreateTransaction(c *fiber.Ctx) error {
	var tx model.AccountingTransaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.service.PostTransaction(&tx, userID); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

// UpdateTransaction edits an entry
// PUT /api/v1/accounting/transactions/:id
func (h *AccountingHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var tx model.AccountingTransaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateTransaction(id, &tx, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction updated", "data": updated})
}

// DeleteTransaction removes an entry
// DELETE /api/v1/accounting/transactions/:id
func (h *AccountingHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.DeleteTransaction(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

// GetTransaction returns one entry
// GET /api/v1/accounting/transactions/:id
func (h *AccountingHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransaction(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}

// GetTransactions lists entries, optionally filtered by type, category,
// worker and date range
// GET /api/v1/accounting/transactions?type=&category=&worker_id=&from=&to=
func (h *AccountingHandler) GetTransactions(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	transactions, err := h.service.GetTransactions(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

// GetSummary returns income/expense totals and net result per currency
// GET /api/v1/accounting/summary
func (h *AccountingHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// GetCategoryTotals groups one type's amounts by category
// GET /api/v1/accounting/totals?type=expense&from=&to=
func (h *AccountingHandler) GetCategoryTotals(c *fiber.Ctx) error {
	txType := model.TransactionType(c.Query("type"))
	if txType == "" {
		return c.Status(400).JSON(fiber.Map{"error": "type query parameter is required"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	totals, err := h.service.TotalsByCategory(txType, from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(totals)
}

func parseFilter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{
		Type:     model.TransactionType(c.Query("type")),
		Category: c.Query("category"),
	}

	if raw := c.Query("worker_id"); raw != "" {
		workerID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fiber.NewError(400, "Invalid worker_id")
		}
		filter.WorkerID = &workerID
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.From = from
	filter.To = to
	return filter, nil
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, fiber.NewError(400, "Invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, fiber.NewError(400, "Invalid to date, expected YYYY-MM-DD")
		}
		// inclusive end of day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, nil
}
