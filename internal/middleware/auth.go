package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/service/auth"
)

const (
	AdminContextKey   = "admin"
	AdminIDContextKey = "admin_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		admin, err := authService.GetAdminByID(c.Context(), claims.AdminID)
		if err != nil || admin == nil || !admin.Active {
			return Unauthorized("Account not found or deactivated")
		}

		c.Locals(AdminContextKey, admin)
		c.Locals(AdminIDContextKey, admin.ID)

		return c.Next()
	}
}

func GetCurrentAdmin(c *fiber.Ctx) *domain.Admin {
	admin, ok := c.Locals(AdminContextKey).(*domain.Admin)
	if !ok {
		return nil
	}
	return admin
}

func GetCurrentAdminID(c *fiber.Ctx) uuid.UUID {
	adminID, ok := c.Locals(AdminIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return adminID
}
