package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/service/activity"
)

type ActivityHandler struct {
	activityService activity.Service
}

func NewActivityHandler(activityService activity.Service) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var filter domain.ActivityLogFilter

	if raw := c.Query("action"); raw != "" {
		action := domain.ActivityAction(raw)
		filter.Action = &action
	}
	if raw := c.Query("username"); raw != "" {
		filter.Username = &raw
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndDate = &t
		}
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		params = domain.DefaultPagination()
	}

	logs, pagination, err := h.activityService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"logs":       logs,
		"pagination": pagination,
	})
}

func (h *ActivityHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.activityService.Stats(c.Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *ActivityHandler) Clear(c *fiber.Ctx) error {
	olderThanDays := c.QueryInt("older_than_days", 30)

	deleted, err := h.activityService.Clear(c.Context(), olderThanDays)
	if err != nil {
		return err
	}
	return okMessage(c, "Activity log cleared", fiber.Map{"deleted": deleted})
}
