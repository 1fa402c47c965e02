package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/handler"
)

// mockBudgetServicer is a test double for handler.BudgetServicer.
type mockBudgetServicer struct {
	report func(ctx context.Context, tripID, userID uuid.UUID) (domain.BudgetReport, error)
}

func (m *mockBudgetServicer) Report(ctx context.Context, tripID, userID uuid.UUID) (domain.BudgetReport, error) {
	return m.report(ctx, tripID, userID)
}

// compile-time check: mockBudgetServicer must satisfy handler.BudgetServicer.
var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

func TestBudget_200(t *testing.T) {
	userID := uuid.New()
	trip := tripFixture(userID)
	day1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	svc := &mockBudgetServicer{
		report: func(_ context.Context, tid, uid uuid.UUID) (domain.BudgetReport, error) {
			assert.Equal(t, trip.ID, tid)
			assert.Equal(t, userID, uid)
			return domain.BudgetReport{
				Trip:      trip,
				TotalDays: 10,
				Summary: domain.BudgetSummary{
					TotalCost:               60,
					ActivityCount:           4,
					AverageCostPerDay:       6,
					AverageCostPerActiveDay: 30,
					DaysWithActivities:      2,
				},
				DailyBreakdown: []domain.DailyCost{
					{Date: day1, Cost: 30, ActivityCount: 3},
				},
			}, nil
		},
	}

	req := authedRequest(t, http.MethodGet, fmt.Sprintf("/trips/%s/budget", trip.ID), nil, userID)
	rec := httptest.NewRecorder()

	newRouter(nil, nil, nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Budget retrieved successfully", env.Message)

	tripData := env.Data["trip"].(map[string]any)
	assert.Equal(t, float64(10), tripData["total_days"])

	summary := env.Data["summary"].(map[string]any)
	assert.Equal(t, float64(60), summary["total_cost"])
	assert.Equal(t, float64(4), summary["activity_count"])
	assert.Equal(t, float64(30), summary["average_cost_per_active_day"])
	assert.Equal(t, float64(2), summary["days_with_activities"])

	breakdown := env.Data["daily_breakdown"].([]any)
	require.Len(t, breakdown, 1)
	first := breakdown[0].(map[string]any)
	assert.Equal(t, "2024-06-01", first["date"])
	assert.Equal(t, float64(3), first["activity_count"])
}

func TestBudget_200_EmptyBreakdown(t *testing.T) {
	userID := uuid.New()
	trip := tripFixture(userID)

	svc := &mockBudgetServicer{
		report: func(_ context.Context, _, _ uuid.UUID) (domain.BudgetReport, error) {
			return domain.BudgetReport{
				Trip:           trip,
				TotalDays:      10,
				DailyBreakdown: []domain.DailyCost{},
			}, nil
		},
	}

	req := authedRequest(t, http.MethodGet, fmt.Sprintf("/trips/%s/budget", trip.ID), nil, userID)
	rec := httptest.NewRecorder()

	newRouter(nil, nil, nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	breakdown := env.Data["daily_breakdown"].([]any)
	assert.Empty(t, breakdown, "empty breakdown serializes as [], not null")
}

func TestBudget_404(t *testing.T) {
	svc := &mockBudgetServicer{
		report: func(_ context.Context, _, _ uuid.UUID) (domain.BudgetReport, error) {
			return domain.BudgetReport{}, domain.ErrNotFound
		},
	}

	req := authedRequest(t, http.MethodGet, fmt.Sprintf("/trips/%s/budget", uuid.New()), nil, uuid.New())
	rec := httptest.NewRecorder()

	newRouter(nil, nil, nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudget_403(t *testing.T) {
	svc := &mockBudgetServicer{
		report: func(_ context.Context, _, _ uuid.UUID) (domain.BudgetReport, error) {
			return domain.BudgetReport{}, fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
		},
	}

	req := authedRequest(t, http.MethodGet, fmt.Sprintf("/trips/%s/budget", uuid.New()), nil, uuid.New())
	rec := httptest.NewRecorder()

	newRouter(nil, nil, nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
