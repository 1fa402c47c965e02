package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/auth"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

func TestTokenManager_SignAndVerify(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, exp, err := tm.Sign(userID, "traveler@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "traveler@example.com", claims.Email)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	signer := auth.NewTokenManager("secret-a", time.Hour)
	verifier := auth.NewTokenManager("secret-b", time.Hour)

	token, _, err := signer.Sign(uuid.New(), "traveler@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	tm := auth.NewTokenManager("secret", -time.Minute) // already expired at issue

	token, _, err := tm.Sign(uuid.New(), "traveler@example.com")
	require.NoError(t, err)

	_, err = tm.Verify(token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)

	for _, raw := range []string{"", "not.a.token", "abc"} {
		_, err := tm.Verify(raw)

		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q should be rejected", raw)
	}
}

// Tokens signed with an algorithm other than HMAC must be rejected even when
// otherwise well-formed. Guards against alg-substitution attacks.
func TestTokenManager_Verify_RejectsNoneAlgorithm(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(raw)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenManager_Verify_BadUserID(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": "not-a-uuid",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Verify(raw)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
