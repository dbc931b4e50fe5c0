package handler

import (
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// AddFuel records a fuel purchase
// POST /api/v1/fuel
func (h *StockHandler) AddFuel(c *fiber.Ctx) error {
	var fuel model.FuelLog
	if err := c.BodyParser(&fuel); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddFuel(&fuel, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Fuel recorded", "data": fuel})
}

// GetFuel lists fuel stock with remaining quantity and status
// GET /api/v1/fuel
func (h *StockHandler) GetFuel(c *fiber.Ctx) error {
	items, err := h.service.GetFuelList()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

// AddMedicine records a medicine purchase
// POST /api/v1/medicines
func (h *StockHandler) AddMedicine(c *fiber.Ctx) error {
	var medicine model.Medicine
	if err := c.BodyParser(&medicine); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddMedicine(&medicine, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Medicine recorded", "data": medicine})
}

// GetMedicines lists medicine stock with remaining quantity and status
// GET /api/v1/medicines
func (h *StockHandler) GetMedicines(c *fiber.Ctx) error {
	items, err := h.service.GetMedicineList()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

// AddFertilizer records a fertilizer purchase
// POST /api/v1/fertilizers
func (h *StockHandler) AddFertilizer(c *fiber.Ctx) error {
	var fertilizer model.Fertilizer
	if err := c.BodyParser(&fertilizer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddFertilizer(&fertilizer, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Fertilizer recorded", "data": fertilizer})
}

// GetFertilizers lists fertilizer stock with remaining quantity and status
// GET /api/v1/fertilizers
func (h *StockHandler) GetFertilizers(c *fiber.Ctx) error {
	items, err := h.service.GetFertilizerList()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

// RecordConsumption draws down one stock item
// POST /api/v1/consumption
func (h *StockHandler) RecordConsumption(c *fiber.Ctx) error {
	var req service.ConsumptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	consumption, err := h.service.RecordConsumption(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Consumption recorded", "data": consumption})
}

// GetConsumptions lists all consumption records
// GET /api/v1/consumption
func (h *StockHandler) GetConsumptions(c *fiber.Ctx) error {
	records, err := h.service.GetConsumptions()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(records)
}

// DeleteConsumption removes a consumption record
// DELETE /api/v1/consumption/:id
func (h *StockHandler) DeleteConsumption(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consumption ID"})
	}

	if err := h.service.DeleteConsumption(id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Consumption deleted"})
}

// GetRemaining reports remaining quantity and status for one stock item
// GET /api/v1/stock/:category/:id/remaining
func (h *StockHandler) GetRemaining(c *fiber.Ctx) error {
	category := model.StockCategory(c.Params("category"))
	if !category.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock category"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	remaining, status, err := h.service.RemainingQuantity(category, id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"remaining": remaining,
		"status":    status,
	})
}

// DeleteItem removes a stock item with its consumption and accounting rows
// DELETE /api/v1/stock/:category/:id
func (h *StockHandler) DeleteItem(c *fiber.Ctx) error {
	category := model.StockCategory(c.Params("category"))
	if !category.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock category"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(category, id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock item deleted"})
}
