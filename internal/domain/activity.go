package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a dated, timed event belonging to a trip. An activity has no
// direct user reference — ownership is transitive through its trip's owner.
// Time is a wall-clock string normalized to "HH:MM:SS" (24-hour).
// Cost is nil when the activity has no cost attached; it is never negative.
type Activity struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Date        time.Time
	Time        string
	Title       string
	Description string   // optional, "" when unset
	Cost        *float64 // optional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivityUpdate carries the optional fields of a partial activity update.
// A nil field means "leave unchanged".
type ActivityUpdate struct {
	Date        *time.Time
	Time        *string
	Title       *string
	Description *string
	Cost        *float64
}

// Empty reports whether the update contains no fields at all.
func (u ActivityUpdate) Empty() bool {
	return u.Date == nil && u.Time == nil && u.Title == nil && u.Description == nil && u.Cost == nil
}

// ItineraryDay groups the activities of one calendar day of a trip,
// in (date, time) ascending order. Used by the itinerary views.
type ItineraryDay struct {
	Date       time.Time
	Activities []Activity
}
