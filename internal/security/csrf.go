// Package security holds the anti-forgery token logic. One token per
// session, required on every state-changing request.
package security

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"accountportal/pkg/utils"
)

// SessionKeyCSRF is where the token lives inside the session.
const SessionKeyCSRF = "csrf_token"

const tokenBytes = 32

// IssueToken returns the session's CSRF token, generating and storing a
// fresh one if the session has none yet. The caller is responsible for
// saving the session afterwards.
func IssueToken(sess *session.Session) (string, error) {
	if token, ok := sess.Get(SessionKeyCSRF).(string); ok && token != "" {
		return token, nil
	}

	token, err := utils.GenerateRandomHex(tokenBytes)
	if err != nil {
		return "", err
	}
	sess.Set(SessionKeyCSRF, token)

	return token, nil
}

// ValidateToken decides whether a request may proceed. Safe methods always
// pass. State-changing methods pass only when both tokens are present and
// equal; the comparison is constant time. Anything missing fails closed.
func ValidateToken(sessionToken, submittedToken, method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions, fiber.MethodTrace:
		return true
	}

	if sessionToken == "" || submittedToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(sessionToken), []byte(submittedToken)) == 1
}
