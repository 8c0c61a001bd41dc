package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"a@b.co", true},
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"not-an-email", false},
		{"", false},
		{"@example.com", false},
		{"user@", false},
		{"user @example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidEmail(tc.input))
		})
	}
}

func TestValidPhone(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"09171234567", true},
		{"+639171234567", true},
		{"12345", false},
		{"0917123456", false},    // one digit short
		{"091712345678", false},  // one digit long
		{"+63917123456", false},  // one digit short
		{"639171234567", false},  // missing plus
		{"09 171234567", false},  // whitespace
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidPhone(tc.input))
		})
	}
}

func codes(violations []Violation) []string {
	var out []string
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

func TestPasswordStrength(t *testing.T) {
	policy := DefaultPasswordPolicy()

	testCases := []struct {
		name     string
		password string
		expected []string
	}{
		{"acceptable", "Str0ng&Long", nil},
		{"too short", "Aa1!x", []string{CodePasswordTooShort}},
		{"too long", "Aa1!" + strings.Repeat("x", 125), []string{CodePasswordTooLong}},
		{"missing uppercase", "weakpass1!", []string{CodePasswordNoUpper}},
		{"missing lowercase", "WEAKPASS1!", []string{CodePasswordNoLower}},
		{"missing digit", "Weakpass!!", []string{CodePasswordNoDigit}},
		{"missing symbol", "Weakpass11", []string{CodePasswordNoSymbol}},
		{
			// No short-circuit: every violation is reported.
			"short and missing three classes",
			"abc",
			[]string{CodePasswordTooShort, CodePasswordNoUpper, CodePasswordNoDigit, CodePasswordNoSymbol},
		},
		{"common password", "Password1!", []string{CodePasswordCommon}},
		{"common check is case sensitive", "password1!", []string{CodePasswordNoUpper}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, codes(policy.Check(tc.password)))
		})
	}
}

func TestPasswordStrengthCommonOnlyWhenOtherwiseClean(t *testing.T) {
	// "Welcome1!" is on the deny list but also too short for a 12-char
	// minimum; the length violation wins and the common check stays quiet.
	policy := PasswordPolicy{MinLength: 12, MaxLength: 128}

	got := codes(policy.Check("Welcome1!"))
	assert.Equal(t, []string{CodePasswordTooShort}, got)
}
