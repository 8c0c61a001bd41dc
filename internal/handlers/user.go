package handlers

import (
	"github.com/gofiber/fiber/v2"

	"accountportal/internal/database"
	"accountportal/internal/platform/account"
)

func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(database.User)

	return c.JSON(account.ProfileOf(&user))
}
