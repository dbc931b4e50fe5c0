package handler

import (
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WorkerHandler struct {
	service service.WorkerService
}

func NewWorkerHandler(s service.WorkerService) *WorkerHandler {
	return &WorkerHandler{service: s}
}

// CreateWorker registers a new worker
// POST /api/v1/workers
func (h *WorkerHandler) CreateWorker(c *fiber.Ctx) error {
	var worker model.Worker
	if err := c.BodyParser(&worker); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateWorker(&worker, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Worker created", "data": worker})
}

// GetWorkers lists all workers
// GET /api/v1/workers
func (h *WorkerHandler) GetWorkers(c *fiber.Ctx) error {
	workers, err := h.service.GetWorkers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(workers)
}

// GetWorker returns one worker
// GET /api/v1/workers/:id
func (h *WorkerHandler) GetWorker(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	worker, err := h.service.GetWorker(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(worker)
}

// UpdateWorker updates a worker's profile and rates
// PUT /api/v1/workers/:id
func (h *WorkerHandler) UpdateWorker(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	var worker model.Worker
	if err := c.BodyParser(&worker); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateWorker(id, &worker, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Worker updated", "data": updated})
}

// DeleteWorker removes a worker together with shifts, attendance and
// accounting rows linked to them
// DELETE /api/v1/workers/:id
func (h *WorkerHandler) DeleteWorker(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	if err := h.service.DeleteWorker(id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Worker deleted"})
}

// AddShift records a work shift for a worker
// POST /api/v1/shifts
func (h *WorkerHandler) AddShift(c *fiber.Ctx) error {
	var shift model.WorkShift
	if err := c.BodyParser(&shift); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddShift(&shift, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Shift recorded", "data": shift})
}

// UpdateShift edits a recorded shift
// PUT /api/v1/shifts/:id
func (h *WorkerHandler) UpdateShift(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	var shift model.WorkShift
	if err := c.BodyParser(&shift); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateShift(id, &shift, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift updated", "data": updated})
}

// DeleteShift removes a recorded shift
// DELETE /api/v1/shifts/:id
func (h *WorkerHandler) DeleteShift(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	if err := h.service.DeleteShift(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift deleted"})
}

// GetShifts lists one worker's shift history
// GET /api/v1/workers/:id/shifts
func (h *WorkerHandler) GetShifts(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	shifts, err := h.service.GetShifts(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shifts)
}

// GetBalance returns a worker's derived pay summary
// GET /api/v1/workers/:id/balance
func (h *WorkerHandler) GetBalance(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	account, err := h.service.GetBalance(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(account)
}

// GetAccounts returns the pay summary for every worker
// GET /api/v1/workers/accounts
func (h *WorkerHandler) GetAccounts(c *fiber.Ctx) error {
	accounts, err := h.service.GetAccounts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(accounts)
}

// RecordAttendance marks a worker present/absent for a day
// POST /api/v1/attendance
func (h *WorkerHandler) RecordAttendance(c *fiber.Ctx) error {
	var attendance model.Attendance
	if err := c.BodyParser(&attendance); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RecordAttendance(&attendance, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Attendance recorded", "data": attendance})
}

// UpdateAttendance edits an attendance record
// PUT /api/v1/attendance/:id
func (h *WorkerHandler) UpdateAttendance(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid attendance ID"})
	}

	var attendance model.Attendance
	if err := c.BodyParser(&attendance); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateAttendance(id, &attendance, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Attendance updated", "data": updated})
}

// DeleteAttendance removes an attendance record
// DELETE /api/v1/attendance/:id
func (h *WorkerHandler) DeleteAttendance(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid attendance ID"})
	}

	if err := h.service.DeleteAttendance(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Attendance deleted"})
}

// GetAttendance lists attendance for one day (?date=YYYY-MM-DD, default today)
// GET /api/v1/attendance
func (h *WorkerHandler) GetAttendance(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	records, err := h.service.GetAttendanceByDate(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(records)
}
