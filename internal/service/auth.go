package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/auth"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
)

// AuthService implements signup, login, and account management.
// Hashing and token signing are delegated to the auth package; this service
// owns the credential rules and the email normalization policy.
type AuthService struct {
	users      repo.UserRepo
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

// Signup registers a new account and issues an access token.
// The email is normalized (trimmed, lowercased) before the uniqueness check,
// so registration is case-insensitive. Returns domain.ErrConflict when the
// email is already taken.
func (s *AuthService) Signup(ctx context.Context, email, password string) (domain.User, string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return domain.User{}, "", err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, "", fmt.Errorf("%w: user already exists, please login", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: hash: %w", err)
	}

	// The unique index is the real guard against a concurrent signup racing
	// past the existence check above; the repo surfaces it as ErrConflict.
	user, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: hash})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	token, _, err := s.tokens.Sign(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues an access token.
// Unknown email and wrong password both return domain.ErrUnauthorized. The
// messages differ (matching the product's UX copy), which weakly leaks
// account existence; kept as-is deliberately.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("%w: no account exists for this email, sign up first", domain.ErrUnauthorized)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return domain.User{}, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	token, _, err := s.tokens.Sign(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// GetByID returns the user with the given ID.
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.GetByID: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. A changed email is
// normalized and validated; uniqueness is enforced by the repo (ErrConflict).
// An empty update set fails with domain.ErrValidation.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	if upd.Empty() {
		return domain.User{}, fmt.Errorf("%w: no fields provided to update", domain.ErrValidation)
	}

	if upd.Email != nil {
		e := normalizeEmail(*upd.Email)
		if !emailRe.MatchString(e) {
			return domain.User{}, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
		}
		upd.Email = &e
	}
	if upd.FullName != nil {
		n := strings.TrimSpace(*upd.FullName)
		if len(n) > maxTitleLen {
			return domain.User{}, fmt.Errorf("%w: full name must not exceed %d characters", domain.ErrValidation, maxTitleLen)
		}
		upd.FullName = &n
	}

	user, err := s.users.UpdateProfile(ctx, id, upd)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateProfile: %w", err)
	}
	return user, nil
}

// ChangePassword re-verifies the current password before accepting the new
// one. A wrong current password fails with domain.ErrUnauthorized.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, current, newPassword string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: hash: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: %w", err)
	}
	return nil
}

// DeleteAccount removes the user. Trips and activities are cascade-deleted
// by the schema's foreign keys.
func (s *AuthService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.AuthService.DeleteAccount: %w", err)
	}
	return nil
}

// normalizeEmail trims whitespace and lowercases, matching what the schema stores.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials enforces the signup rules for email and password.
func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(email) > maxTitleLen {
		return fmt.Errorf("%w: email must not exceed %d characters", domain.ErrValidation, maxTitleLen)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}
