package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return middleware.BadRequest("Username and password are required")
	}

	admin, token, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid username or password")
		}
		return err
	}

	return ok(c, fiber.Map{
		"token": token,
		"admin": admin,
	})
}

// Verify resolves the bearer token back to the logged-in admin. The auth
// middleware has already done the heavy lifting.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	admin := middleware.GetCurrentAdmin(c)
	if admin == nil {
		return middleware.Unauthorized("Account not found")
	}
	return ok(c, admin)
}
