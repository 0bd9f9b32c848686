package ledger

import (
	"strings"
	"testing"

	"kickboard_ledger/internal/config"
	"kickboard_ledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}
	stored, err := v.Hash("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", stored)
	assert.True(t, v.Verify(stored, "p1"))
	assert.False(t, v.Verify(stored, "p2"))
	assert.True(t, v.Verify("", ""))
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{Cost: 4}
	stored, err := v.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored)
	assert.True(t, v.Verify(stored, "p1"))
	assert.False(t, v.Verify(stored, "p2"))
	assert.False(t, v.Verify("p1", "p1"))
}

func TestBcryptVerifier_PasswordTooLong(t *testing.T) {
	v := BcryptVerifier{Cost: 4}
	_, err := v.Hash(strings.Repeat("a", 72))
	require.NoError(t, err)
	_, err = v.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
}

func TestVerifierFor(t *testing.T) {
	assert.IsType(t, BcryptVerifier{}, VerifierFor(config.PasswordBcrypt))
	assert.IsType(t, PlainVerifier{}, VerifierFor(config.PasswordPlain))
	assert.IsType(t, PlainVerifier{}, VerifierFor(""))
}
