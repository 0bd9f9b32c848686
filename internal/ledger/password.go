package ledger

import (
	"crypto/subtle" // Constant time comparison
	"errors"        // Error inspection

	"kickboard_ledger/internal/config" // Password scheme names
	"kickboard_ledger/internal/domain" // Error kinds

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// PasswordVerifier turns a supplied secret into its stored form and checks secrets against it
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, supplied string) bool
}

// PlainVerifier stores the secret as given and compares it exactly
type PlainVerifier struct{}

// Hash returns the password unchanged
func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares the stored and supplied secrets
func (PlainVerifier) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptVerifier stores bcrypt hashes
type BcryptVerifier struct {
	Cost int // bcrypt cost, zero means bcrypt.DefaultCost
}

// Hash returns the bcrypt hash of the password
func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong // bcrypt only accepts up to 72 bytes
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks the supplied password against the stored hash
func (BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// VerifierFor returns the verifier for a configured password scheme
func VerifierFor(scheme string) PasswordVerifier {
	if scheme == config.PasswordBcrypt {
		return BcryptVerifier{}
	}
	return PlainVerifier{}
}
