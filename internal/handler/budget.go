package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// handleBudget handles GET /trips/{tripID}/budget.
// The report is derived from activity rows on every request; nothing here is
// persisted, so the figures are always consistent with the current activities.
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	report, err := s.budget.Report(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusOK, "Budget retrieved successfully", budgetToResponse(report))
}

// --- response types -----------------------------------------------------------

type budgetTripResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	TotalDays   int                `json:"total_days"`
}

type budgetSummaryResponse struct {
	TotalCost               float64 `json:"total_cost"`
	ActivityCount           int     `json:"activity_count"`
	AverageCostPerDay       float64 `json:"average_cost_per_day"`
	AverageCostPerActiveDay float64 `json:"average_cost_per_active_day"`
	DaysWithActivities      int     `json:"days_with_activities"`
}

type dailyCostResponse struct {
	Date          openapi_types.Date `json:"date"`
	Cost          float64            `json:"cost"`
	ActivityCount int                `json:"activity_count"`
}

type budgetResponse struct {
	Trip           budgetTripResponse    `json:"trip"`
	Summary        budgetSummaryResponse `json:"summary"`
	DailyBreakdown []dailyCostResponse   `json:"daily_breakdown"`
}

func budgetToResponse(rep domain.BudgetReport) budgetResponse {
	breakdown := make([]dailyCostResponse, len(rep.DailyBreakdown))
	for i, d := range rep.DailyBreakdown {
		breakdown[i] = dailyCostResponse{
			Date:          openapi_types.Date{Time: d.Date},
			Cost:          d.Cost,
			ActivityCount: d.ActivityCount,
		}
	}

	return budgetResponse{
		Trip: budgetTripResponse{
			ID:          rep.Trip.ID.String(),
			Title:       rep.Trip.Title,
			Destination: rep.Trip.Destination,
			StartDate:   openapi_types.Date{Time: rep.Trip.StartDate},
			EndDate:     openapi_types.Date{Time: rep.Trip.EndDate},
			TotalDays:   rep.TotalDays,
		},
		Summary: budgetSummaryResponse{
			TotalCost:               rep.Summary.TotalCost,
			ActivityCount:           rep.Summary.ActivityCount,
			AverageCostPerDay:       rep.Summary.AverageCostPerDay,
			AverageCostPerActiveDay: rep.Summary.AverageCostPerActiveDay,
			DaysWithActivities:      rep.Summary.DaysWithActivities,
		},
		DailyBreakdown: breakdown,
	}
}
