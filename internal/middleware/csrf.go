package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"accountportal/internal/config"
	"accountportal/internal/security"
)

const HeaderCSRFToken = "X-CSRF-Token"

// CsrfMiddleware rejects state-changing requests whose submitted token does
// not match the session token. The token is read from the X-CSRF-Token
// header or the csrf_token form field.
func CsrfMiddleware(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	if !cfg.CSRFEnabled {
		return c.Next()
	}

	store := c.Locals("store").(*session.Store)

	sess, err := store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	sessionToken, _ := sess.Get(security.SessionKeyCSRF).(string)

	submitted := c.Get(HeaderCSRFToken)
	if submitted == "" {
		submitted = c.FormValue("csrf_token")
	}

	if !security.ValidateToken(sessionToken, submitted, c.Method()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Invalid CSRF token",
		})
	}

	return c.Next()
}
