package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/auth"
)

// ctxKey is unexported so only this package can create context keys,
// preventing collisions with other packages' context values.
type ctxKey int

const claimsKey ctxKey = iota

// NewAuthenticator returns a middleware that requires a valid Bearer access
// token. Verified claims are stored in the request context for handlers to
// read via UserID / Email. Missing or invalid tokens get a 401 in the API's
// standard error envelope without reaching the next handler.
func NewAuthenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "authentication token required")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid or expired authentication token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID from the request context.
// ok is false when the request did not pass through NewAuthenticator.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	if !ok {
		return uuid.UUID{}, false
	}
	return claims.UserID, true
}

// Email returns the authenticated user's email from the request context.
func Email(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	if !ok {
		return "", false
	}
	return claims.Email, true
}

// unauthorized writes a 401 in the same envelope shape the handlers use.
// Duplicated here rather than importing the handler package to keep the
// dependency direction handler → middleware.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"message": message},
	})
}
