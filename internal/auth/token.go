// Package auth wraps the token-signing and password-hashing primitives used
// by the GlobeTrotter API. Services depend on this package instead of calling
// jwt or bcrypt directly, so the crypto surface stays in one place.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// Claims is the verified payload of an access token.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager with the given signing secret and
// token lifetime. The secret must match between Sign and Verify.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token embedding the user's ID and email, expiring after the
// configured TTL. It returns the serialized token and its expiry time.
func (m *TokenManager) Sign(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     exp.Unix(),
		"iat":     now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth.TokenManager.Sign: %w", err)
	}
	return signed, exp, nil
}

// Verify parses and validates a token, returning its claims. Any failure
// (malformed token, wrong signature, non-HMAC signing method, expiry,
// unparseable claims) surfaces as domain.ErrInvalidToken.
func (m *TokenManager) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: malformed or expired", domain.ErrInvalidToken)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("%w: unexpected claims format", domain.ErrInvalidToken)
	}

	sub, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}
	email, _ := claims["email"].(string)

	return Claims{UserID: userID, Email: email}, nil
}
