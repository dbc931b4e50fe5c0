package handler

import (
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductionHandler struct {
	service service.ProductionService
}

func NewProductionHandler(s service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

// AddProduction records harvested output
// POST /api/v1/production
func (h *ProductionHandler) AddProduction(c *fiber.Ctx) error {
	var req service.AddProductionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	production, err := h.service.AddProduction(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Production recorded", "data": production})
}

// GetProductions lists production records
// GET /api/v1/production
func (h *ProductionHandler) GetProductions(c *fiber.Ctx) error {
	records, err := h.service.GetProductions()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(records)
}

// DeleteProduction removes a production record
// DELETE /api/v1/production/:id
func (h *ProductionHandler) DeleteProduction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid production ID"})
	}

	if err := h.service.DeleteProduction(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Production deleted"})
}

// AddSale records a sale with dual-currency pricing
// POST /api/v1/sales
func (h *ProductionHandler) AddSale(c *fiber.Ctx) error {
	var req service.AddSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.AddSale(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// GetSales lists sale records
// GET /api/v1/sales
func (h *ProductionHandler) GetSales(c *fiber.Ctx) error {
	records, err := h.service.GetSales()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(records)
}

// DeleteSale removes a sale record
// DELETE /api/v1/sales/:id
func (h *ProductionHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

// GetProductTypes lists product types
// GET /api/v1/product-types
func (h *ProductionHandler) GetProductTypes(c *fiber.Ctx) error {
	types, err := h.service.GetProductTypes()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(types)
}

// AddProductType registers a product type
// POST /api/v1/product-types
func (h *ProductionHandler) AddProductType(c *fiber.Ctx) error {
	var productType model.ProductType
	if err := c.BodyParser(&productType); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddProductType(&productType, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product type created", "data": productType})
}

// DeleteProductType removes a product type with its production and sales
// DELETE /api/v1/product-types/:id
func (h *ProductionHandler) DeleteProductType(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product type ID"})
	}

	if err := h.service.DeleteProductType(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product type deleted"})
}

// GetSalesReport lists sales with grand totals per currency
// GET /api/v1/sales/report
func (h *ProductionHandler) GetSalesReport(c *fiber.Ctx) error {
	summary, err := h.service.SalesReport()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// GetProductionReport groups production by product and location
// GET /api/v1/production/report
func (h *ProductionHandler) GetProductionReport(c *fiber.Ctx) error {
	groups, err := h.service.ProductionReport()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(groups)
}
