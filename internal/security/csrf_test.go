package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToken(t *testing.T) {
	const token = "f00dfeedf00dfeedf00dfeedf00dfeed"

	testCases := []struct {
		name         string
		sessionToken string
		submitted    string
		method       string
		expected     bool
	}{
		{"matching tokens on POST", token, token, "POST", true},
		{"empty submitted token", token, "", "POST", false},
		{"empty session token", "", token, "POST", false},
		{"both empty", "", "", "POST", false},
		{"mismatch", token, "deadbeef", "POST", false},
		{"GET passes without tokens", "", "", "GET", true},
		{"HEAD passes without tokens", "", "", "HEAD", true},
		{"OPTIONS passes without tokens", "", "", "OPTIONS", true},
		{"PUT requires a match", token, "deadbeef", "PUT", false},
		{"DELETE requires a match", token, token, "DELETE", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateToken(tc.sessionToken, tc.submitted, tc.method))
		})
	}
}
