package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"accountportal/internal/config"
	"accountportal/internal/platform/account"
	puser "accountportal/internal/platform/user"
	"accountportal/pkg/utils"
)

func GetAllUsers(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	userService := puser.NewService(db)

	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	users, err := userService.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(users)
}

func CreateUser(c *fiber.Ctx) error {
	type UserInput struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone" validate:"required"`
		Password string `json:"password"`
		Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	}

	var input UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	err := config.Validate.Struct(input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	password := input.Password
	generated := false
	if password == "" {
		// Suffix guarantees one of every required character class so the
		// temp password passes the strength policy.
		password = utils.GenerateRandomString(12) + "aA1!"
		generated = true
	}

	newUser, err := accountService(c).Register(account.RegisterRequest{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: password,
		Role:     input.Role,
	})
	if err != nil {
		return renderAccountError(c, err)
	}

	response := fiber.Map{"id": newUser.ID}
	if generated {
		response["temp_password"] = password
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}
