package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverEqualsPlaintext(t *testing.T) {
	h, err := HashPassword("securepass123")
	require.NoError(t, err)
	assert.NotEqual(t, "securepass123", h)
	assert.True(t, strings.HasPrefix(h, "$2"), "expected bcrypt hash, got %q", h)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestComparePasswordAndHash(t *testing.T) {
	h, err := HashPassword("securepass123")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswordAndHash("securepass123", h))
	assert.ErrorIs(t, ComparePasswordAndHash("wrongpass", h), ErrPasswordMismatch)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("securepass123")
	require.NoError(t, err)
	h2, err := HashPassword("securepass123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
