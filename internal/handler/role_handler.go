package handler

import (
	"strconv"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
}

func NewRoleHandler(roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, privilegeRepo: privilegeRepo}
}

type roleRequest struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Privileges []string `json:"privileges"`
}

// GetRoles returns all available roles
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(roles)
}

// CreateRole registers a role with a privilege set
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Code == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code and name are required"})
	}

	if existing, _ := h.roleRepo.FindByCode(req.Code); existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Role code already exists"})
	}

	privileges, err := h.privilegeRepo.FindByCodes(req.Privileges)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown privilege code"})
	}

	role := &model.Role{Code: req.Code, Name: req.Name, Privileges: privileges}
	if err := h.roleRepo.Create(role); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create role"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Role created", "data": role})
}

// UpdateRole renames a role and replaces its privilege set
// PUT /api/v1/roles/:id
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	role, err := h.roleRepo.FindByID(uint(id))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Role not found"})
	}

	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if err := h.roleRepo.Update(role); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update role"})
	}

	if req.Privileges != nil {
		privileges, err := h.privilegeRepo.FindByCodes(req.Privileges)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown privilege code"})
		}
		if err := h.roleRepo.ReplacePrivileges(role, privileges); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update role privileges"})
		}
	}

	return c.JSON(fiber.Map{"message": "Role updated", "data": role})
}

// DeleteRole removes a role that no user still holds
// DELETE /api/v1/roles/:id
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	if _, err := h.roleRepo.FindByID(uint(id)); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Role not found"})
	}

	count, err := h.roleRepo.CountUsers(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check role usage"})
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "Role is still assigned to users"})
	}

	if err := h.roleRepo.Delete(uint(id)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete role"})
	}

	return c.JSON(fiber.Map{"message": "Role deleted"})
}

// GetPrivileges returns the full privilege catalog
// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.privilegeRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
	}
	return c.JSON(privileges)
}
