package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrip_TotalDays(t *testing.T) {
	trip := domain.Trip{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 10)}
	assert.Equal(t, 10, trip.TotalDays())

	// Single-day trips still count as one day.
	trip.EndDate = trip.StartDate
	assert.Equal(t, 1, trip.TotalDays())
}

func TestNewPaginationParams(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 5}, domain.NewPaginationParams(intPtr(3), intPtr(5)))

	// Out-of-range values fall back rather than erroring.
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(intPtr(0), intPtr(-1)))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 100}, domain.NewPaginationParams(nil, intPtr(500)))
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.PaginationParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, domain.PaginationParams{Page: 3, Limit: 20}.Offset())
}
