// Package repo contains all database access logic for the GlobeTrotter API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips of a user ordered by start_date
	// descending, then created_at descending (most recent first).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// ListByUserPaged returns one page of a user's trips in the same order
	// as ListByUser, plus the total row count for pagination metadata.
	ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update applies the non-nil fields of upd to the trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID
	// exists. Callers must ensure upd is not empty.
	Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)

	// Delete removes a trip by ID. The trip's activities are cascade-deleted
	// by the activities.trip_id foreign key, not by application code.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, title, destination, start_date, end_date, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, title, destination, start_date, end_date)
		VALUES (@user_id, @title, @destination, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListByUser returns all trips of a user, most recent start date first.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows, "repo.TripRepo.ListByUser")
}

// ListByUserPaged returns one page of a user's trips plus the total count.
func (r *pgTripRepo) ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT COUNT(*) FROM trips WHERE user_id = @user_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUserPaged: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUserPaged: %w", err)
	}
	defer rows.Close()

	trips, err := collectTrips(rows, "repo.TripRepo.ListByUserPaged")
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// Update applies the provided fields and bumps updated_at.
// The SET clause is assembled from the non-nil fields of upd; validation of
// the resulting state (date ordering etc.) happens in the service layer, with
// the table's check constraints as the backstop.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if upd.Title != nil {
		set = append(set, "title = @title")
		args["title"] = *upd.Title
	}
	if upd.Destination != nil {
		set = append(set, "destination = @destination")
		args["destination"] = *upd.Destination
	}
	if upd.StartDate != nil {
		set = append(set, "start_date = @start_date")
		args["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		set = append(set, "end_date = @end_date")
		args["end_date"] = *upd.EndDate
	}

	q := `
		UPDATE trips
		SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(&id, &userID, &t.Title, &t.Destination, &start, &end, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	return t, nil
}

// collectTrips drains rows into a slice, wrapping errors with op for context.
func collectTrips(rows pgx.Rows, op string) ([]domain.Trip, error) {
	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return trips, nil
}
