package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds both trip and activity repos because every activity operation
// starts with a two-step ownership check: resolve the parent trip, then
// verify the trip's owner is the caller.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// clockRe accepts 24-hour HH:MM or HH:MM:SS. Anything else is rejected.
var clockRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// Create verifies trip ownership, validates the activity, then persists it.
// Returns domain.ErrNotFound if the trip is absent, domain.ErrForbidden if
// it belongs to another user, domain.ErrValidation on any rule violation.
func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	if _, err := s.verifyTripOwnership(ctx, activity.TripID, userID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	activity.Title = strings.TrimSpace(activity.Title)
	activity.Description = strings.TrimSpace(activity.Description)

	if err := validateActivityFields(activity.Title, activity.Description, activity.Time, activity.Cost); err != nil {
		return domain.Activity{}, err
	}
	activity.Time = normalizeClock(activity.Time)

	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip verifies trip ownership and returns the trip's activities
// ordered by (date, time) ascending. Always returns a non-nil slice.
func (s *ActivityService) ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Activity, error) {
	if _, err := s.verifyTripOwnership(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update applies a partial update to an activity after the two-step ownership
// check. Each supplied field is validated independently; an empty update set
// fails with domain.ErrValidation.
func (s *ActivityService) Update(ctx context.Context, id, userID uuid.UUID, upd domain.ActivityUpdate) (domain.Activity, error) {
	if _, err := s.verifyActivityOwnership(ctx, id, userID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	if upd.Empty() {
		return domain.Activity{}, fmt.Errorf("%w: no fields provided to update", domain.ErrValidation)
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" {
			return domain.Activity{}, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		if len(t) > maxTitleLen {
			return domain.Activity{}, fmt.Errorf("%w: title must not exceed %d characters", domain.ErrValidation, maxTitleLen)
		}
		upd.Title = &t
	}
	if upd.Description != nil {
		d := strings.TrimSpace(*upd.Description)
		if len(d) > maxDescriptionLen {
			return domain.Activity{}, fmt.Errorf("%w: description must not exceed %d characters", domain.ErrValidation, maxDescriptionLen)
		}
		upd.Description = &d
	}
	if upd.Time != nil {
		if !clockRe.MatchString(*upd.Time) {
			return domain.Activity{}, errBadClock()
		}
		c := normalizeClock(*upd.Time)
		upd.Time = &c
	}
	if upd.Cost != nil && *upd.Cost < 0 {
		return domain.Activity{}, errNegativeCost()
	}

	result, err := s.activities.Update(ctx, id, upd)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity after the two-step ownership check.
func (s *ActivityService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.verifyActivityOwnership(ctx, id, userID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}

	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// Itinerary verifies ownership and returns the trip together with its
// activities grouped by date ascending.
func (s *ActivityService) Itinerary(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error) {
	trip, err := s.verifyTripOwnership(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ActivityService.Itinerary: %w", err)
	}

	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ActivityService.Itinerary: %w", err)
	}
	return trip, groupByDate(activities), nil
}

// PublicItinerary returns a trip and its grouped activities without any
// ownership check. It backs the unauthenticated share-by-link view; the
// handler is responsible for stripping non-public fields.
func (s *ActivityService) PublicItinerary(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ActivityService.PublicItinerary: %w", err)
	}

	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ActivityService.PublicItinerary: %w", err)
	}
	return trip, groupByDate(activities), nil
}

// verifyTripOwnership resolves a trip and checks the caller owns it.
func (s *ActivityService) verifyTripOwnership(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != userID {
		return domain.Trip{}, fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
	}
	return trip, nil
}

// verifyActivityOwnership resolves an activity, then its parent trip, and
// checks the caller owns the trip. Ownership of an activity is transitive —
// the activity row carries no user reference of its own.
func (s *ActivityService) verifyActivityOwnership(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.Activity{}, err
	}
	if _, err := s.verifyTripOwnership(ctx, activity.TripID, userID); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}

// groupByDate folds an already-ordered activity list into per-day buckets.
// The input ordering (date, time ascending) is preserved within each day.
func groupByDate(activities []domain.Activity) []domain.ItineraryDay {
	days := []domain.ItineraryDay{}
	for _, a := range activities {
		if n := len(days); n > 0 && days[n-1].Date.Equal(a.Date) {
			days[n-1].Activities = append(days[n-1].Activities, a)
			continue
		}
		days = append(days, domain.ItineraryDay{Date: a.Date, Activities: []domain.Activity{a}})
	}
	return days
}

const maxDescriptionLen = 2000

// validateActivityFields enforces the activity creation rules.
func validateActivityFields(title, description, clock string, cost *float64) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title must not exceed %d characters", domain.ErrValidation, maxTitleLen)
	}
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description must not exceed %d characters", domain.ErrValidation, maxDescriptionLen)
	}
	if !clockRe.MatchString(clock) {
		return errBadClock()
	}
	if cost != nil && *cost < 0 {
		return errNegativeCost()
	}
	return nil
}

// normalizeClock pads HH:MM to HH:MM:SS so times compare and render uniformly.
func normalizeClock(clock string) string {
	if len(clock) == 5 {
		return clock + ":00"
	}
	return clock
}

func errBadClock() error {
	return fmt.Errorf("%w: time must be in 24-hour HH:MM or HH:MM:SS format", domain.ErrValidation)
}

func errNegativeCost() error {
	return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
}
