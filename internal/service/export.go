package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
)

// ExportService assembles a full flat export of a user's trips and activities.
type ExportService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, activities repo.ActivityRepo) *ExportService {
	return &ExportService{trips: trips, activities: activities}
}

// ExportByUser returns one ExportRow per activity across all of the user's
// trips, trips first by start date descending, activities within a trip in
// (date, time) ascending order. Trips with no activities contribute one row
// with empty activity fields.
func (s *ExportService) ExportByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportByUser: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:          t.ID.String(),
			TripTitle:       t.Title,
			TripDestination: t.Destination,
			TripStartDate:   t.StartDate.Format("2006-01-02"),
			TripEndDate:     t.EndDate.Format("2006-01-02"),
		}

		activities, err := s.activities.ListByTrip(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.ExportByUser: %w", err)
		}
		if len(activities) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, a := range activities {
			row := base
			row.ActivityTitle = a.Title
			row.ActivityDate = a.Date.Format("2006-01-02")
			row.ActivityTime = a.Time
			row.ActivityDescription = a.Description
			row.ActivityCost = a.Cost
			rows = append(rows, row)
		}
	}
	return rows, nil
}
