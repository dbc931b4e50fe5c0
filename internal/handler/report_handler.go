package handler

import (
	"time"

	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReports lists stored reports
// GET /api/v1/reports
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	reports, err := h.service.GetReports()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reports)
}

// GetReport returns one stored report
// GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	report, err := h.service.GetReport(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// DeleteReport removes a stored report
// DELETE /api/v1/reports/:id
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	if err := h.service.DeleteReport(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report deleted"})
}

// GenerateDailySummary builds the accounting summary for one day on demand
// POST /api/v1/reports/daily-summary?date=YYYY-MM-DD (default today)
func (h *ReportHandler) GenerateDailySummary(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		day = parsed
	}

	var generatedBy *uuid.UUID
	if actorID, err := uuid.Parse(getUserID(c)); err == nil {
		generatedBy = &actorID
	}

	report, err := h.service.GenerateDailySummary(day, generatedBy)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Report generated", "data": report})
}
