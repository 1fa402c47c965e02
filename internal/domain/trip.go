package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned trip. A trip is owned by exactly one user
// and is the top-level aggregate; activities belong to a trip.
// StartDate and EndDate are date-only values (midnight UTC) and the invariant
// EndDate >= StartDate holds for every persisted trip.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalDays returns the inclusive day span of the trip, minimum 1.
func (t Trip) TotalDays() int {
	days := int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// TripUpdate carries the optional fields of a partial trip update.
// A nil field means "leave unchanged".
type TripUpdate struct {
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Empty reports whether the update contains no fields at all.
func (u TripUpdate) Empty() bool {
	return u.Title == nil && u.Destination == nil && u.StartDate == nil && u.EndDate == nil
}
