package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	notifications, err := h.notificationService.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"unread": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	marked, err := h.notificationService.MarkAsRead(c.Context(), id)
	if err != nil {
		return err
	}
	if !marked {
		return middleware.NotFound("Notification not found")
	}
	return okMessage(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.notificationService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}
	return okMessage(c, "All notifications marked as read", nil)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	deleted, err := h.notificationService.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return middleware.NotFound("Notification not found")
	}
	return okMessage(c, "Notification deleted", nil)
}
