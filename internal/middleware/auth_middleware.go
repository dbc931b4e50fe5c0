package middleware

import (
	"strings"

	"go-farm-ledger/internal/repository"
	"go-farm-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account is disabled"})
		}

		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_name", claims.Username)
		c.Locals("is_admin", claims.IsAdmin)
		c.Locals("user_privileges", claims.Privileges)

		return c.Next()
	}
}

// RequirePermission checks if the authenticated user holds the required
// permission tag. Admin accounts pass every check.
func RequirePermission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("is_admin").(bool); ok && isAdmin {
			return c.Next()
		}

		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "ليس لديك صلاحية للقيام بهذا الإجراء"})
		}

		for _, p := range privileges {
			if p == requiredPermission {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error":      "ليس لديك صلاحية للقيام بهذا الإجراء",
			"permission": requiredPermission,
		})
	}
}

// RequireAnyPermission checks if the user has at least one of the specified permissions
func RequireAnyPermission(requiredPermissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("is_admin").(bool); ok && isAdmin {
			return c.Next()
		}

		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "ليس لديك صلاحية للقيام بهذا الإجراء"})
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range requiredPermissions {
				if userPriv == reqPriv {
					return c.Next()
				}
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error":       "ليس لديك صلاحية للقيام بهذا الإجراء",
			"permissions": strings.Join(requiredPermissions, ", "),
		})
	}
}

// RequireAdmin restricts a route to admin accounts only.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("is_admin").(bool); ok && isAdmin {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{"error": "ليس لديك صلاحية للقيام بهذا الإجراء"})
	}
}
