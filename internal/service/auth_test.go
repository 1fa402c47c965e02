package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/auth"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create         func(ctx context.Context, user domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	updateProfile  func(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error)
	updatePassword func(ctx context.Context, id uuid.UUID, passwordHash string) error
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	return m.updateProfile(ctx, id, upd)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.updatePassword(ctx, id, passwordHash)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockUserRepo must satisfy repo.UserRepo.
var _ repo.UserRepo = (*mockUserRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// newAuthService wires an AuthService with a real token manager and the
// cheapest bcrypt cost so tests stay fast.
func newAuthService(users repo.UserRepo) *service.AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return service.NewAuthService(users, tokens, bcrypt.MinCost)
}

// noUserRepo returns a mockUserRepo whose GetByEmail reports no account.
func noUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByEmail: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// ---- Signup ----------------------------------------------------------------

func TestAuthService_Signup_OK(t *testing.T) {
	userID := uuid.New()
	users := noUserRepo()
	users.create = func(_ context.Context, u domain.User) (domain.User, error) {
		u.ID = userID
		return u, nil
	}

	svc := newAuthService(users)

	user, token, err := svc.Signup(context.Background(), "traveler@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "traveler@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestAuthService_Signup_NormalizesEmail(t *testing.T) {
	users := noUserRepo()
	var captured domain.User
	users.create = func(_ context.Context, u domain.User) (domain.User, error) {
		captured = u
		u.ID = uuid.New()
		return u, nil
	}

	svc := newAuthService(users)

	_, _, err := svc.Signup(context.Background(), "  Traveler@Example.COM  ", "password123")

	require.NoError(t, err)
	assert.Equal(t, "traveler@example.com", captured.Email)
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	users := noUserRepo()
	var captured domain.User
	users.create = func(_ context.Context, u domain.User) (domain.User, error) {
		captured = u
		u.ID = uuid.New()
		return u, nil
	}

	svc := newAuthService(users)

	_, _, err := svc.Signup(context.Background(), "traveler@example.com", "password123")

	require.NoError(t, err)
	assert.NotEqual(t, "password123", captured.PasswordHash)
	assert.True(t, auth.VerifyPassword(captured.PasswordHash, "password123"))
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{ID: uuid.New(), Email: "traveler@example.com"}, nil
		},
	}

	svc := newAuthService(users)

	_, _, err := svc.Signup(context.Background(), "traveler@example.com", "password123")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_Signup_InvalidEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	for _, email := range []string{"", "not-an-email", "missing@tld", "spaces in@example.com"} {
		_, _, err := svc.Signup(context.Background(), email, "password123")

		assert.ErrorIs(t, err, domain.ErrValidation, "email %q should be rejected", email)
	}
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, _, err := svc.Signup(context.Background(), "traveler@example.com", "short")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Login -----------------------------------------------------------------

func TestAuthService_Login_OK(t *testing.T) {
	userID := uuid.New()
	hash := hashFor(t, "password123")

	users := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			assert.Equal(t, "traveler@example.com", email)
			return domain.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}

	svc := newAuthService(users)

	user, token, err := svc.Login(context.Background(), "Traveler@Example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(noUserRepo())

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "password123")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash := hashFor(t, "password123")
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			return domain.User{ID: uuid.New(), Email: email, PasswordHash: hash}, nil
		},
	}

	svc := newAuthService(users)

	_, _, err := svc.Login(context.Background(), "traveler@example.com", "wrong-password")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---- UpdateProfile ---------------------------------------------------------

func TestAuthService_UpdateProfile_OK(t *testing.T) {
	userID := uuid.New()
	name := "Ada Lovelace"

	users := &mockUserRepo{
		updateProfile: func(_ context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
			return domain.User{ID: id, FullName: *upd.FullName}, nil
		},
	}

	svc := newAuthService(users)

	user, err := svc.UpdateProfile(context.Background(), userID, domain.ProfileUpdate{FullName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.FullName)
}

func TestAuthService_UpdateProfile_EmptyUpdate(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_UpdateProfile_NormalizesEmail(t *testing.T) {
	var captured domain.ProfileUpdate
	users := &mockUserRepo{
		updateProfile: func(_ context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
			captured = upd
			return domain.User{ID: id}, nil
		},
	}

	svc := newAuthService(users)

	email := "  New@Example.COM "
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{Email: &email})

	require.NoError(t, err)
	require.NotNil(t, captured.Email)
	assert.Equal(t, "new@example.com", *captured.Email)
}

func TestAuthService_UpdateProfile_InvalidEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	email := "not-an-email"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{Email: &email})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		updateProfile: func(_ context.Context, _ uuid.UUID, _ domain.ProfileUpdate) (domain.User, error) {
			return domain.User{}, domain.ErrConflict
		},
	}

	svc := newAuthService(users)

	email := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{Email: &email})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- ChangePassword --------------------------------------------------------

func TestAuthService_ChangePassword_OK(t *testing.T) {
	userID := uuid.New()
	hash := hashFor(t, "old-password")

	var newHash string
	users := &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, PasswordHash: hash}, nil
		},
		updatePassword: func(_ context.Context, _ uuid.UUID, passwordHash string) error {
			newHash = passwordHash
			return nil
		},
	}

	svc := newAuthService(users)

	err := svc.ChangePassword(context.Background(), userID, "old-password", "new-password")

	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(newHash, "new-password"))
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	hash := hashFor(t, "old-password")
	users := &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, PasswordHash: hash}, nil
		},
	}

	svc := newAuthService(users)

	err := svc.ChangePassword(context.Background(), uuid.New(), "not-the-password", "new-password")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ChangePassword_ShortNew(t *testing.T) {
	hash := hashFor(t, "old-password")
	users := &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, PasswordHash: hash}, nil
		},
	}

	svc := newAuthService(users)

	err := svc.ChangePassword(context.Background(), uuid.New(), "old-password", "tiny")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- DeleteAccount ---------------------------------------------------------

func TestAuthService_DeleteAccount_OK(t *testing.T) {
	userID := uuid.New()

	var deleted uuid.UUID
	users := &mockUserRepo{
		delete: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}

	svc := newAuthService(users)

	err := svc.DeleteAccount(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, deleted)
}

func TestAuthService_DeleteAccount_NotFound(t *testing.T) {
	users := &mockUserRepo{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	svc := newAuthService(users)

	err := svc.DeleteAccount(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
