// Package service contains the business logic for the GlobeTrotter API.
// Services validate inputs, enforce ownership and business rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every read and mutation is scoped to the requesting user: a trip owned by
// someone else yields domain.ErrForbidden even when it exists.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// Create validates and persists a new trip for userID.
// Title and destination are trimmed before validation; returns
// domain.ErrValidation on any rule violation.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Title = strings.TrimSpace(trip.Title)
	trip.Destination = strings.TrimSpace(trip.Destination)

	if err := validateTripFields(trip.Title, trip.Destination); err != nil {
		return domain.Trip{}, err
	}
	if trip.EndDate.Before(trip.StartDate) {
		return domain.Trip{}, errEndBeforeStart()
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip, enforcing ownership.
func (s *TripService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if trip.UserID != userID {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w: trip belongs to another user", domain.ErrForbidden)
	}
	return trip, nil
}

// ListByUserPaged returns one page of the user's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListByUserPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListByUserPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update applies a partial update to a trip after verifying ownership.
// An empty update set fails with domain.ErrValidation. If the update touches
// either date, the resulting (existing or incoming) pair is re-validated.
func (s *TripService) Update(ctx context.Context, id, userID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if existing.UserID != userID {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: trip belongs to another user", domain.ErrForbidden)
	}

	if upd.Empty() {
		return domain.Trip{}, fmt.Errorf("%w: no fields provided to update", domain.ErrValidation)
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" {
			return domain.Trip{}, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		if len(t) > maxTitleLen {
			return domain.Trip{}, fmt.Errorf("%w: title must not exceed %d characters", domain.ErrValidation, maxTitleLen)
		}
		upd.Title = &t
	}
	if upd.Destination != nil {
		d := strings.TrimSpace(*upd.Destination)
		if d == "" {
			return domain.Trip{}, fmt.Errorf("%w: destination cannot be empty", domain.ErrValidation)
		}
		if len(d) > maxTitleLen {
			return domain.Trip{}, fmt.Errorf("%w: destination must not exceed %d characters", domain.ErrValidation, maxTitleLen)
		}
		upd.Destination = &d
	}

	// Re-validate date ordering over the effective pair: incoming value when
	// provided, the stored one otherwise.
	start, end := existing.StartDate, existing.EndDate
	if upd.StartDate != nil {
		start = *upd.StartDate
	}
	if upd.EndDate != nil {
		end = *upd.EndDate
	}
	if end.Before(start) {
		return domain.Trip{}, errEndBeforeStart()
	}

	result, err := s.trips.Update(ctx, id, upd)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip after verifying ownership. The trip's activities go
// with it via the schema's cascade rule.
func (s *TripService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("service.TripService.Delete: %w: trip belongs to another user", domain.ErrForbidden)
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

const maxTitleLen = 255

// validateTripFields enforces the rules shared by trip creation:
// title and destination must be non-empty after trimming and at most 255 chars.
func validateTripFields(title, destination string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title must not exceed %d characters", domain.ErrValidation, maxTitleLen)
	}
	if destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if len(destination) > maxTitleLen {
		return fmt.Errorf("%w: destination must not exceed %d characters", domain.ErrValidation, maxTitleLen)
	}
	return nil
}

func errEndBeforeStart() error {
	return fmt.Errorf("%w: end date must be greater than or equal to start date", domain.ErrValidation)
}
