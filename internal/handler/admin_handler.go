package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/admin"
)

type AdminHandler struct {
	adminService    admin.Service
	activityService activity.Service
}

func NewAdminHandler(adminService admin.Service, activityService activity.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService, activityService: activityService}
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		return err
	}
	return ok(c, admins)
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.adminService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidInput) {
			return middleware.BadRequest("Username and password are required")
		}
		if errors.Is(err, admin.ErrUsernameExists) {
			return middleware.Conflict("Username already taken")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionCreateAdmin,
		"Created admin account "+created.Username, created.ID.String(), "admin")

	return ok(c, created)
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid admin ID")
	}

	if err := h.adminService.Delete(c.Context(), id, middleware.GetCurrentAdminID(c)); err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			return middleware.NotFound("Admin not found")
		}
		if errors.Is(err, admin.ErrCannotDeleteSuperAdmin) {
			return middleware.Forbidden("Superadmin accounts cannot be deleted")
		}
		if errors.Is(err, admin.ErrCannotDeleteSelf) {
			return middleware.Forbidden("You cannot delete your own account")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionDeleteAdmin,
		"Deleted admin account", id.String(), "admin")

	return okMessage(c, "Admin deleted", nil)
}

// CheckSuperAdmin tells the panel frontend whether to show the admin
// management tab.
func (h *AdminHandler) CheckSuperAdmin(c *fiber.Ctx) error {
	current := middleware.GetCurrentAdmin(c)
	if current == nil {
		return middleware.Unauthorized("Account not found")
	}
	return ok(c, fiber.Map{
		"is_superadmin": current.Role == domain.RoleSuperAdmin,
	})
}
