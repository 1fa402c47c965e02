package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/repo"
)

// BudgetService derives per-trip budget reports from activity rows.
// Nothing is persisted: totals and averages are recomputed on every read.
type BudgetService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewBudgetService constructs a BudgetService backed by the provided repos.
func NewBudgetService(trips repo.TripRepo, activities repo.ActivityRepo) *BudgetService {
	return &BudgetService{trips: trips, activities: activities}
}

// Report assembles the budget view of a trip after the same ownership check
// as the activity listing. AverageCostPerDay divides by the trip's inclusive
// day span (minimum 1); AverageCostPerActiveDay divides by the number of
// distinct dates that have at least one activity, and is 0 when there are none.
func (s *BudgetService) Report(ctx context.Context, tripID, userID uuid.UUID) (domain.BudgetReport, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.BudgetReport{}, fmt.Errorf("service.BudgetService.Report: %w", err)
	}
	if trip.UserID != userID {
		return domain.BudgetReport{}, fmt.Errorf("service.BudgetService.Report: %w: trip belongs to another user", domain.ErrForbidden)
	}

	total, err := s.activities.TotalCost(ctx, tripID)
	if err != nil {
		return domain.BudgetReport{}, fmt.Errorf("service.BudgetService.Report: %w", err)
	}

	breakdown, err := s.activities.DailyBreakdown(ctx, tripID)
	if err != nil {
		return domain.BudgetReport{}, fmt.Errorf("service.BudgetService.Report: %w", err)
	}
	if breakdown == nil {
		breakdown = []domain.DailyCost{}
	}

	totalDays := trip.TotalDays()
	activeDays := len(breakdown)

	avgPerActiveDay := 0.0
	if activeDays > 0 {
		avgPerActiveDay = total.TotalCost / float64(activeDays)
	}

	return domain.BudgetReport{
		Trip:      trip,
		TotalDays: totalDays,
		Summary: domain.BudgetSummary{
			TotalCost:               total.TotalCost,
			ActivityCount:           total.ActivityCount,
			AverageCostPerDay:       round2(total.TotalCost / float64(totalDays)),
			AverageCostPerActiveDay: round2(avgPerActiveDay),
			DaysWithActivities:      activeDays,
		},
		DailyBreakdown: breakdown,
	}, nil
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
