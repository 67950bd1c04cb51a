package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/application"
)

type ApplicationHandler struct {
	applicationService application.Service
	activityService    activity.Service
}

func NewApplicationHandler(applicationService application.Service, activityService activity.Service) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		activityService:    activityService,
	}
}

func (h *ApplicationHandler) Status(c *fiber.Ctx) error {
	open, err := h.applicationService.IsOpen(c.Context())
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"isOpen": open})
}

func (h *ApplicationHandler) Toggle(c *fiber.Ctx) error {
	open, err := h.applicationService.IsOpen(c.Context())
	if err != nil {
		return err
	}

	if err := h.applicationService.SetOpen(c.Context(), !open); err != nil {
		return err
	}
	return ok(c, fiber.Map{"isOpen": !open})
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserID == uuid.Nil {
		return middleware.BadRequest("user_id is required")
	}

	app, err := h.applicationService.Submit(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationsClosed):
			return middleware.Forbidden("Applications are currently closed")
		case errors.Is(err, application.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, application.ErrAlreadyApplied):
			return middleware.BadRequest("You have already submitted an application")
		case errors.Is(err, application.ErrIncompleteAnswers):
			return middleware.BadRequest("Real name, age and country are required")
		}
		return err
	}

	return created(c, app)
}

func (h *ApplicationHandler) MyApplication(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	app, err := h.applicationService.MyApplication(c.Context(), userID)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			return middleware.NotFound("No application found")
		}
		return err
	}
	return ok(c, app)
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var status *domain.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.ApplicationStatus(raw)
		status = &s
	}

	apps, err := h.applicationService.List(c.Context(), status)
	if err != nil {
		return err
	}
	return ok(c, apps)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	app, err := h.applicationService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			return middleware.NotFound("Application not found")
		}
		return err
	}
	return ok(c, app)
}

func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	app, err := h.applicationService.Accept(c.Context(), id, middleware.GetCurrentAdminID(c))
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			return middleware.NotFound("Application not found")
		}
		if errors.Is(err, application.ErrAlreadyReviewed) {
			return middleware.Conflict("Application has already been reviewed")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionAcceptApplication,
		"Accepted application from "+app.RealName, app.ID.String(), "application")

	return okMessage(c, "Application accepted", app)
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	var input domain.RejectApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	app, err := h.applicationService.Reject(c.Context(), id, middleware.GetCurrentAdminID(c), input.Reason)
	if err != nil {
		if errors.Is(err, application.ErrReasonRequired) {
			return middleware.BadRequest("A rejection reason is required")
		}
		if errors.Is(err, application.ErrApplicationNotFound) {
			return middleware.NotFound("Application not found")
		}
		if errors.Is(err, application.ErrAlreadyReviewed) {
			return middleware.Conflict("Application has already been reviewed")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionRejectApplication,
		"Rejected application from "+app.RealName, app.ID.String(), "application")

	return okMessage(c, "Application rejected", app)
}

func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.applicationService.Stats(c.Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
