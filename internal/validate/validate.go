// Package validate holds the account field rules: email shape, the phone
// formats we accept, and the password strength policy.
package validate

import (
	"regexp"

	"github.com/go-playground/validator"
)

var v = validator.New()

// Violation is a single field problem. Code is stable across wording
// changes so callers and tests can match on kind.
type Violation struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	CodeNameRequired     = "name_required"
	CodeEmailInvalid     = "email_invalid"
	CodePhoneInvalid     = "phone_invalid"
	CodePhotoRequired    = "photo_required"
	CodePasswordTooShort = "password_too_short"
	CodePasswordTooLong  = "password_too_long"
	CodePasswordNoUpper  = "password_missing_uppercase"
	CodePasswordNoLower  = "password_missing_lowercase"
	CodePasswordNoDigit  = "password_missing_digit"
	CodePasswordNoSymbol = "password_missing_symbol"
	CodePasswordCommon   = "password_common"
)

// Mobile numbers: local format 09XXXXXXXXX or international +63XXXXXXXXXX.
var phonePattern = regexp.MustCompile(`^(09\d{9}|\+63\d{10})$`)

func ValidEmail(email string) bool {
	return v.Var(email, "required,email") == nil
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Complex-looking passwords that show up constantly in breach lists.
// Matched case-sensitively: Password1! is on the list, password1! is not.
var commonPasswords = []string{
	"Password1!", "Password123!", "Welcome1!", "Welcome123!",
	"Admin123!", "Qwerty123!", "Letmein1!", "Password!1",
	"Welcome1@", "Admin1234!", "Change123!", "Temp1234!",
	"Login123!", "Pass1234!", "Secret123!", "Test1234!",
}

func isCommonPassword(password string) bool {
	for _, p := range commonPasswords {
		if password == p {
			return true
		}
	}
	return false
}

// PasswordPolicy carries the configured length bounds.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8, MaxLength: 128}
}

// Check returns every violation found, not just the first one, so a form
// can show all problems at once. The common-password check only fires when
// the password passed everything else.
func (p PasswordPolicy) Check(password string) []Violation {
	var violations []Violation

	add := func(code, message string) {
		violations = append(violations, Violation{Code: code, Field: "password", Message: message})
	}

	if len(password) < p.MinLength {
		add(CodePasswordTooShort, "Password is too short.")
	}
	if len(password) > p.MaxLength {
		add(CodePasswordTooLong, "Password is too long.")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper {
		add(CodePasswordNoUpper, "Password is missing an uppercase letter.")
	}
	if !hasLower {
		add(CodePasswordNoLower, "Password is missing a lowercase letter.")
	}
	if !hasDigit {
		add(CodePasswordNoDigit, "Password is missing a number.")
	}
	if !hasSymbol {
		add(CodePasswordNoSymbol, "Password is missing a special character.")
	}

	if len(violations) == 0 && isCommonPassword(password) {
		add(CodePasswordCommon, "Password is too common.")
	}

	return violations
}
