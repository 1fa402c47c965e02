// Package domain contains the core data types for the GlobeTrotter API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Emails are stored lowercased and trimmed so
// uniqueness is case-insensitive. PasswordHash is a bcrypt digest and must
// never be serialized to clients.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string         // optional, "" when unset
	AvatarURL    string         // optional, "" when unset
	Preferences  map[string]any // free-form key/value, never nil after scan
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the optional fields of a profile update.
// A nil field means "leave unchanged". Empty returns true when no field is set.
type ProfileUpdate struct {
	Email       *string
	FullName    *string
	AvatarURL   *string
	Preferences map[string]any
}

// Empty reports whether the update contains no fields at all.
func (u ProfileUpdate) Empty() bool {
	return u.Email == nil && u.FullName == nil && u.AvatarURL == nil && u.Preferences == nil
}
