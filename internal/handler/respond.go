package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope: {success, message?, data?}.
// Errors take the failure shape through the central error handler.

func ok(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func okMessage(c *fiber.Ctx, message string, data interface{}) error {
	resp := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		resp["data"] = data
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
