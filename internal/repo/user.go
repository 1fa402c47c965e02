package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a user by exact (already-normalized) email.
	// Returns domain.ErrNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile applies the non-nil fields of upd and returns the
	// updated record. Returns domain.ErrNotFound if the user does not
	// exist, domain.ErrConflict if a new email is already taken.
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error)

	// UpdatePassword replaces the stored password hash.
	// Returns domain.ErrNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes a user. Trips (and transitively activities) are
	// cascade-deleted by the schema's foreign keys.
	// Returns domain.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, password_hash, full_name, avatar_url, preferences, created_at, updated_at`

// Create inserts a new user row and returns the full persisted record.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash)
		VALUES (@email, @password_hash)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// GetByEmail retrieves a user by email. The caller normalizes the email
// (lowercase, trimmed) before calling — the column stores normalized values.
func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", translateErr(err))
	}
	return result, nil
}

// UpdateProfile applies the provided fields and bumps updated_at.
func (r *pgUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if upd.Email != nil {
		set = append(set, "email = @email")
		args["email"] = *upd.Email
	}
	if upd.FullName != nil {
		set = append(set, "full_name = @full_name")
		args["full_name"] = *upd.FullName
	}
	if upd.AvatarURL != nil {
		set = append(set, "avatar_url = @avatar_url")
		args["avatar_url"] = *upd.AvatarURL
	}
	if upd.Preferences != nil {
		set = append(set, "preferences = @preferences")
		args["preferences"] = upd.Preferences
	}

	q := `
		UPDATE users
		SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", translateErr(err))
	}
	return result, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *pgUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = @password_hash, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a user by primary key. The users→trips→activities cascade
// lives in the schema, not here.
func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
// NULL full_name/avatar_url become "", NULL preferences become an empty map.
func scanUser(s scanner) (domain.User, error) {
	var (
		u        domain.User
		id       pgtype.UUID
		fullName pgtype.Text
		avatar   pgtype.Text
	)

	err := s.Scan(&id, &u.Email, &u.PasswordHash, &fullName, &avatar, &u.Preferences, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	u.FullName = fullName.String
	u.AvatarURL = avatar.String
	if u.Preferences == nil {
		u.Preferences = map[string]any{}
	}
	return u, nil
}
