package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("a@x.com", "user", "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("a@x.com", "admin", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestJWT_NoSecret(t *testing.T) {
	_, err := GenerateJWT("a@x.com", "user", "")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = ParseJWT("whatever", "")
	assert.ErrorIs(t, err, ErrNoSecret)
}
