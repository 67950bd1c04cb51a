package middleware

import (
	"github.com/gofiber/fiber/v2"

	"perfect-cfw/internal/domain"
)

func RequireRole(requiredRole domain.AdminRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := GetCurrentAdmin(c)
		if admin == nil {
			return Unauthorized("Account not found")
		}

		if !admin.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

func RequireSuperAdmin() fiber.Handler {
	return RequireRole(domain.RoleSuperAdmin)
}
