package handler

import (
	"github.com/gofiber/fiber/v2"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
)

// recordActivity writes one audit trail entry for the current admin request.
// Best-effort by contract: the activity service swallows its own failures.
func recordActivity(c *fiber.Ctx, svc activity.Service, action domain.ActivityAction, description, targetID, targetType string) {
	input := activity.LogInput{
		Action:      action,
		Description: description,
	}

	if admin := middleware.GetCurrentAdmin(c); admin != nil {
		adminID := admin.ID
		username := admin.Username
		input.AdminID = &adminID
		input.Username = &username
	}
	if targetID != "" {
		input.TargetID = &targetID
	}
	if targetType != "" {
		input.TargetType = &targetType
	}

	ip := c.IP()
	userAgent := c.Get("User-Agent")
	input.IPAddress = &ip
	if userAgent != "" {
		input.UserAgent = &userAgent
	}

	svc.Log(c.Context(), input)
}
