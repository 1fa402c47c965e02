package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities, including
// the read-only budget aggregations derived from activity rows.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves an activity by primary key.
	// Returns domain.ErrNotFound if no such activity exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByTrip returns all activities of a trip ordered by (date, time)
	// ascending, with created_at as a stable tiebreak. This ordering is
	// what the itinerary timeline renders — do not change it.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update applies the non-nil fields of upd and returns the updated
	// record. Returns domain.ErrNotFound if the activity does not exist.
	Update(ctx context.Context, id uuid.UUID, upd domain.ActivityUpdate) (domain.Activity, error)

	// Delete removes an activity by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalCost sums the cost of all activities of a trip (NULL counts as 0)
	// and counts the activities.
	TotalCost(ctx context.Context, tripID uuid.UUID) (domain.CostTotal, error)

	// DailyBreakdown groups a trip's activities by date, summing cost and
	// counting activities per date, ordered by date ascending.
	DailyBreakdown(ctx context.Context, tripID uuid.UUID) ([]domain.DailyCost, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, trip_id, date, time, title, description, cost::float8, created_at, updated_at`

// Create inserts a new activity row and returns the full persisted record.
func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, date, time, title, description, cost)
		VALUES (@trip_id, @date, @time, @title, @description, @cost)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"trip_id":     activity.TripID,
		"date":        activity.Date,
		"time":        clockToPg(activity.Time),
		"title":       activity.Title,
		"description": textOrNull(activity.Description),
		"cost":        activity.Cost, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

// GetByID retrieves an activity by primary key.
func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListByTrip returns all activities of a trip in itinerary order.
func (r *pgActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY date ASC, time ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: rows: %w", err)
	}

	return activities, nil
}

// Update applies the provided fields and bumps updated_at.
func (r *pgActivityRepo) Update(ctx context.Context, id uuid.UUID, upd domain.ActivityUpdate) (domain.Activity, error) {
	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if upd.Date != nil {
		set = append(set, "date = @date")
		args["date"] = *upd.Date
	}
	if upd.Time != nil {
		set = append(set, "time = @time")
		args["time"] = clockToPg(*upd.Time)
	}
	if upd.Title != nil {
		set = append(set, "title = @title")
		args["title"] = *upd.Title
	}
	if upd.Description != nil {
		set = append(set, "description = @description")
		args["description"] = textOrNull(*upd.Description)
	}
	if upd.Cost != nil {
		set = append(set, "cost = @cost")
		args["cost"] = *upd.Cost
	}

	q := `
		UPDATE activities
		SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + activityColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

// Delete removes an activity by primary key.
func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// TotalCost sums costs across all activities of a trip.
// COALESCE turns the NULL sum of an activity-less trip into 0.
func (r *pgActivityRepo) TotalCost(ctx context.Context, tripID uuid.UUID) (domain.CostTotal, error) {
	const q = `
		SELECT COALESCE(SUM(cost), 0)::float8, COUNT(*)
		FROM activities
		WHERE trip_id = @trip_id`

	var t domain.CostTotal
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&t.TotalCost, &t.ActivityCount)
	if err != nil {
		return domain.CostTotal{}, fmt.Errorf("repo.ActivityRepo.TotalCost: %w", err)
	}
	return t, nil
}

// DailyBreakdown groups a trip's activity costs by date, ascending.
func (r *pgActivityRepo) DailyBreakdown(ctx context.Context, tripID uuid.UUID) ([]domain.DailyCost, error) {
	const q = `
		SELECT date, COALESCE(SUM(cost), 0)::float8, COUNT(*)
		FROM activities
		WHERE trip_id = @trip_id
		GROUP BY date
		ORDER BY date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.DailyBreakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []domain.DailyCost
	for rows.Next() {
		var (
			d    domain.DailyCost
			date pgtype.Date
		)
		if err := rows.Scan(&date, &d.Cost, &d.ActivityCount); err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.DailyBreakdown: scan: %w", err)
		}
		d.Date = date.Time
		breakdown = append(breakdown, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.DailyBreakdown: rows: %w", err)
	}

	return breakdown, nil
}

// scanActivity maps a single database row into a domain.Activity.
// The TIME column round-trips through pgtype.Time; cost::float8 makes the
// NUMERIC column scan cleanly into *float64.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
		clock  pgtype.Time
		desc   pgtype.Text
	)

	err := s.Scan(&id, &tripID, &date, &clock, &a.Title, &desc, &a.Cost, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.Date = date.Time
	a.Time = pgToClock(clock)
	a.Description = desc.String
	return a, nil
}

// clockToPg converts a normalized "HH:MM:SS" string into a pgtype.Time.
// The service layer guarantees the format; a malformed value encodes as 00:00:00.
func clockToPg(s string) pgtype.Time {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return pgtype.Time{Valid: true}
	}
	us := int64(t.Hour()*3600+t.Minute()*60+t.Second()) * 1e6
	return pgtype.Time{Microseconds: us, Valid: true}
}

// pgToClock formats a pgtype.Time as "HH:MM:SS".
func pgToClock(t pgtype.Time) string {
	secs := t.Microseconds / 1e6
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}

// textOrNull maps "" to NULL for optional text columns.
func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
