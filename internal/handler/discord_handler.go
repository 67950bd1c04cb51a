package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/discord"
)

type DiscordHandler struct {
	discordService discord.Service
	cfg            *config.Config
}

func NewDiscordHandler(discordService discord.Service, cfg *config.Config) *DiscordHandler {
	return &DiscordHandler{discordService: discordService, cfg: cfg}
}

func (h *DiscordHandler) AuthURL(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"url": h.discordService.AuthURL("activation"),
	})
}

// Callback lands the browser after Discord's consent screen. It always
// redirects back to the frontend: to the success page with the user handles,
// or to the activation page carrying an error code.
func (h *DiscordHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return h.redirectError(c, "missing_code")
	}

	user, err := h.discordService.HandleCallback(c.Context(), code)
	if err != nil {
		return h.redirectError(c, "oauth_failed")
	}

	target := fmt.Sprintf("%s/auth-success.html?userId=%s&discordId=%s",
		h.cfg.FrontendURL, user.ID, url.QueryEscape(user.DiscordID))
	return c.Redirect(target, fiber.StatusFound)
}

func (h *DiscordHandler) Me(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		return middleware.BadRequest("userId query parameter is required")
	}

	profile, err := h.discordService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, discord.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return ok(c, profile)
}

// Logout only acknowledges: the frontend clears its stored user handle, the
// backend keeps no session for Discord users.
func (h *DiscordHandler) Logout(c *fiber.Ctx) error {
	return okMessage(c, "Logged out", nil)
}

func (h *DiscordHandler) redirectError(c *fiber.Ctx, code string) error {
	target := fmt.Sprintf("%s/activation.html?error=%s", h.cfg.FrontendURL, url.QueryEscape(code))
	return c.Redirect(target, fiber.StatusFound)
}
