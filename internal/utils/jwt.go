package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is the lifetime of issued tokens
const TokenTTL = 24 * time.Hour

// ErrNoSecret is returned when tokens are requested without a signing secret
var ErrNoSecret = errors.New("jwt secret not configured")

// JWT Claims
type Claims struct {
	Email                string `json:"email"` // Account email
	Role                 string `json:"role"`  // admin or user
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given email and role
func GenerateJWT(email, role, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	// Set token claims
	claims := Claims{
		Email: email, // Account email
		Role:  role,  // Account role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,                                 // Subject is the account email
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
