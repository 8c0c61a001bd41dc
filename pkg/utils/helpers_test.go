package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng&Pass")
	require.NoError(t, err)

	assert.NotContains(t, hash, "Str0ng&Pass")
	assert.True(t, VerifyPassword("Str0ng&Pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordLongInput(t *testing.T) {
	// Policy allows up to 128 chars, well past bcrypt's 72 byte limit.
	long := "Aa1!" + strings.Repeat("x", 124)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(long, hash))
	assert.False(t, VerifyPassword("Aa1!", hash))
}

func TestGenerateRandomHex(t *testing.T) {
	a, err := GenerateRandomHex(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.Regexp(t, "^[0-9a-f]+$", a)

	b, err := GenerateRandomHex(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(40)
	assert.Len(t, s, 40)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", s)
}
