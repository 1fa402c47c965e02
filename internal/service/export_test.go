package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/service"
)

func TestExportService_OneRowPerActivity(t *testing.T) {
	userID := uuid.New()
	trip := validTrip(userID)
	trip.ID = uuid.New()

	cost := 12.50
	breakfast := validActivity(trip.ID)
	breakfast.Title = "Breakfast"
	breakfast.Time = "08:00:00"
	breakfast.Cost = &cost
	museum := validActivity(trip.ID)
	museum.Title = "Museum"
	museum.Time = "11:00:00"
	museum.Description = "National museum, pre-book tickets"

	trips := &mockTripRepo{
		listByUser: func(_ context.Context, uid uuid.UUID) ([]domain.Trip, error) {
			assert.Equal(t, userID, uid)
			return []domain.Trip{trip}, nil
		},
	}
	activities := &mockActivityRepo{
		listByTrip: func(_ context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
			assert.Equal(t, trip.ID, tripID)
			return []domain.Activity{breakfast, museum}, nil
		},
	}

	rows, err := service.NewExportService(trips, activities).ExportByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, trip.ID.String(), rows[0].TripID)
	assert.Equal(t, trip.Title, rows[0].TripTitle)
	assert.Equal(t, "2025-06-01", rows[0].TripStartDate)
	assert.Equal(t, "2025-06-10", rows[0].TripEndDate)
	assert.Equal(t, "Breakfast", rows[0].ActivityTitle)
	assert.Equal(t, "08:00:00", rows[0].ActivityTime)
	require.NotNil(t, rows[0].ActivityCost)
	assert.Equal(t, 12.50, *rows[0].ActivityCost)

	assert.Equal(t, "Museum", rows[1].ActivityTitle)
	assert.Equal(t, "National museum, pre-book tickets", rows[1].ActivityDescription)
	assert.Nil(t, rows[1].ActivityCost)
}

func TestExportService_TripWithNoActivities_YieldsOneBareRow(t *testing.T) {
	userID := uuid.New()
	trip := validTrip(userID)
	trip.ID = uuid.New()

	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return []domain.Trip{trip}, nil
		},
	}
	activities := &mockActivityRepo{
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{}, nil
		},
	}

	rows, err := service.NewExportService(trips, activities).ExportByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, trip.Title, rows[0].TripTitle)
	assert.Empty(t, rows[0].ActivityTitle)
	assert.Empty(t, rows[0].ActivityDate)
	assert.Nil(t, rows[0].ActivityCost)
}

func TestExportService_NoTrips_EmptyNonNil(t *testing.T) {
	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return []domain.Trip{}, nil
		},
	}
	activities := &mockActivityRepo{}

	rows, err := service.NewExportService(trips, activities).ExportByUser(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_ActivityDateFormatting(t *testing.T) {
	userID := uuid.New()
	trip := validTrip(userID)
	trip.ID = uuid.New()

	hike := validActivity(trip.ID)
	hike.Date = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return []domain.Trip{trip}, nil
		},
	}
	activities := &mockActivityRepo{
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{hike}, nil
		},
	}

	rows, err := service.NewExportService(trips, activities).ExportByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-06-03", rows[0].ActivityDate)
}

func TestExportService_RepoError(t *testing.T) {
	dbErr := errors.New("connection reset")
	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return nil, dbErr
		},
	}

	_, err := service.NewExportService(trips, &mockActivityRepo{}).ExportByUser(context.Background(), uuid.New())

	require.ErrorIs(t, err, dbErr)
}
