package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"accountportal/internal/config"
	"accountportal/internal/mail"
	"accountportal/internal/platform/account"
	"accountportal/internal/platform/attempt"
	"accountportal/internal/platform/storage"
	"accountportal/internal/platform/upload"
	puser "accountportal/internal/platform/user"
	"accountportal/internal/security"
	"accountportal/internal/validate"
)

func accountService(c *fiber.Ctx) *account.Service {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	var backend storage.StorageService
	if cfg.UseS3() {
		backend = storage.NewS3Storage(cfg.Storage())
	} else {
		backend = storage.NewLocalStorage()
	}

	return account.NewService(
		puser.NewService(db),
		attempt.NewService(db, cfg.LockoutAttempts, cfg.LockoutWindow()),
		upload.NewGuard(backend, cfg.UploadDir, cfg.MaxUploadBytes),
		account.Options{
			PasswordPolicy: validate.PasswordPolicy{
				MinLength: cfg.PasswordMinLength,
				MaxLength: cfg.PasswordMaxLength,
			},
			PhotoRequired: cfg.PhotoRequired,
			LockoutWindow: cfg.LockoutWindow(),
		},
	)
}

// renderAccountError maps workflow errors onto HTTP responses. Store errors
// are logged here and never echoed to the client.
func renderAccountError(c *fiber.Ctx, err error) error {
	var validationErr *account.ValidationError
	var uploadErr *upload.Error
	var duplicateErr *account.DuplicateAccountError
	var lockoutErr *account.LockoutError
	var persistenceErr *account.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":    "Validation failed",
			"violations": validationErr.Violations,
		})
	case errors.As(err, &uploadErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": uploadErr.Message})
	case errors.As(err, &duplicateErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Already registered",
			"fields":  duplicateErr.Fields(),
		})
	case errors.As(err, &lockoutErr):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":             "Account temporarily locked due to too many failed login attempts",
			"retry_after_minutes": int(lockoutErr.RetryAfter.Minutes()),
		})
	case errors.Is(err, account.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password."})
	case errors.As(err, &persistenceErr):
		log.Printf("store failure: %v\n", persistenceErr.Unwrap())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	default:
		log.Printf("unexpected error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

func GetCsrfToken(c *fiber.Ctx) error {
	store := c.Locals("store").(*session.Store)

	sess, err := store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	token, err := security.IssueToken(sess)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if err := sess.Save(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"csrf_token": token})
}

func Register(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)

	// Absent file is fine, the photo is optional unless policy says otherwise.
	photo, err := c.FormFile("profile_photo")
	if err != nil {
		photo = nil
	}

	newUser, err := accountService(c).Register(account.RegisterRequest{
		FullName: c.FormValue("full_name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		Password: c.FormValue("password"),
		Photo:    photo,
	})
	if err != nil {
		return renderAccountError(c, err)
	}

	if cfg.MailgunDomain != "" {
		message := mail.Email{
			Subject: "Welcome!",
			From:    fmt.Sprintf("Account Portal <no-reply@%s>", cfg.MailgunDomain),
			To:      []string{newUser.Email},
			Body:    fmt.Sprintf("Hi %s, your account has been created. You can now log in.", newUser.FullName),
		}

		mailer := mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
		if err := mailer.SendMail(&message); err != nil {
			log.Printf("Failed to send email notification: %v\n", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": newUser.ID})
}

func Login(c *fiber.Ctx) error {
	store := c.Locals("store").(*session.Store)

	type LoginInput struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	result, err := accountService(c).Login(account.LoginRequest{
		Email:     input.Email,
		Password:  input.Password,
		IPAddress: c.IP(),
	})
	if err != nil {
		return renderAccountError(c, err)
	}

	sess, err := store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	sess.Set("authenticated", true)
	sess.Set("user_id", result.Profile.ID.String())
	sess.Set("user_name", result.Profile.FullName)
	sess.Set("user_email", result.Profile.Email)
	sess.Set("user_role", result.Profile.Role)
	if result.Profile.ProfilePhoto != nil {
		sess.Set("user_photo", *result.Profile.ProfilePhoto)
	}
	if err := sess.Save(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":        result.Profile,
		"destination": result.Destination,
	})
}

func Logout(c *fiber.Ctx) error {
	store := c.Locals("store").(*session.Store)

	sess, err := store.Get(c)
	if err != nil {
		return err
	}

	sess.Destroy()

	return c.SendStatus(fiber.StatusNoContent)
}
