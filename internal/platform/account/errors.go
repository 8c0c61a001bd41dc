package account

import (
	"errors"
	"fmt"
	"time"

	"accountportal/internal/validate"
)

// ErrInvalidCredentials is the single answer for both an unknown email and
// a wrong password. The two cases must stay indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries every field violation found in one pass.
type ValidationError struct {
	Violations []validate.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d violations)", len(e.Violations))
}

// LockoutError means too many recent failures for the submitted email.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("account temporarily locked, try again after %d minutes", int(e.RetryAfter.Minutes()))
}

// DuplicateAccountError reports which unique identity fields collided.
type DuplicateAccountError struct {
	EmailTaken bool
	PhoneTaken bool
}

func (e *DuplicateAccountError) Error() string {
	switch {
	case e.EmailTaken && e.PhoneTaken:
		return "email and phone already registered"
	case e.PhoneTaken:
		return "phone already registered"
	default:
		return "email already registered"
	}
}

// Fields lists the colliding field names for the response body.
func (e *DuplicateAccountError) Fields() []string {
	var fields []string
	if e.EmailTaken {
		fields = append(fields, "email")
	}
	if e.PhoneTaken {
		fields = append(fields, "phone")
	}
	return fields
}

// PersistenceError wraps a store failure. The wrapped error is for logs
// only and must never reach the client.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "storage failure"
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
