package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/discount"
)

type DiscountHandler struct {
	discountService discount.Service
	activityService activity.Service
}

func NewDiscountHandler(discountService discount.Service, activityService activity.Service) *DiscountHandler {
	return &DiscountHandler{discountService: discountService, activityService: activityService}
}

func (h *DiscountHandler) List(c *fiber.Ctx) error {
	codes, err := h.discountService.List(c.Context())
	if err != nil {
		return err
	}
	return ok(c, codes)
}

func (h *DiscountHandler) ListActive(c *fiber.Ctx) error {
	codes, err := h.discountService.ListActive(c.Context())
	if err != nil {
		return err
	}
	return ok(c, codes)
}

func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateDiscountCodeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	createdBy := "unknown"
	if admin := middleware.GetCurrentAdmin(c); admin != nil {
		createdBy = admin.Username
	}

	code, err := h.discountService.Create(c.Context(), input, createdBy)
	if err != nil {
		if errors.Is(err, discount.ErrInvalidInput) {
			return middleware.BadRequest("Discount percentage must be between 1 and 100")
		}
		if errors.Is(err, discount.ErrCodeExists) {
			return middleware.Conflict("Discount code already exists")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionCreateDiscountCode,
		"Created discount code "+code.Code, code.ID.String(), "discount_code")

	return created(c, code)
}

func (h *DiscountHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid discount code ID")
	}

	var input domain.UpdateDiscountCodeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	code, err := h.discountService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, discount.ErrCodeNotFound) {
			return middleware.NotFound("Discount code not found")
		}
		if errors.Is(err, discount.ErrInvalidInput) {
			return middleware.BadRequest("Invalid discount code update")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionUpdateDiscountCode,
		"Updated discount code "+code.Code, code.ID.String(), "discount_code")

	return ok(c, code)
}

func (h *DiscountHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid discount code ID")
	}

	if err := h.discountService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, discount.ErrCodeNotFound) {
			return middleware.NotFound("Discount code not found")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionDeleteDiscountCode,
		"Deleted discount code", id.String(), "discount_code")

	return okMessage(c, "Discount code deleted", nil)
}

func (h *DiscountHandler) Validate(c *fiber.Ctx) error {
	var input domain.ApplyDiscountInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Code == "" {
		return middleware.BadRequest("A discount code is required")
	}

	view, err := h.discountService.Validate(c.Context(), input.Code)
	if err != nil {
		if errors.Is(err, discount.ErrCodeNotFound) {
			return middleware.NotFound("Discount code not found")
		}
		if errors.Is(err, discount.ErrCodeInvalid) {
			return middleware.BadRequest("Discount code is not valid")
		}
		return err
	}
	return ok(c, view)
}

func (h *DiscountHandler) Apply(c *fiber.Ctx) error {
	var input domain.ApplyDiscountInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Code == "" {
		return middleware.BadRequest("A discount code is required")
	}

	code, err := h.discountService.Apply(c.Context(), input.Code)
	if err != nil {
		if errors.Is(err, discount.ErrCodeExhausted) {
			return middleware.BadRequest("Discount code is not valid")
		}
		return err
	}
	return ok(c, code)
}
