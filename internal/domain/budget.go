package domain

import "time"

// DailyCost is one row of a trip's daily budget breakdown: the summed cost
// and the number of activities on a single date.
type DailyCost struct {
	Date          time.Time
	Cost          float64
	ActivityCount int
}

// CostTotal is the trip-wide aggregate over all activities.
// Activities with no cost count toward ActivityCount but add 0 to TotalCost.
type CostTotal struct {
	TotalCost     float64
	ActivityCount int
}

// BudgetSummary carries the derived figures of a budget report.
// Averages are rounded to two decimals for display.
type BudgetSummary struct {
	TotalCost               float64
	ActivityCount           int
	AverageCostPerDay       float64
	AverageCostPerActiveDay float64
	DaysWithActivities      int
}

// BudgetReport is the full budget view of a trip: the trip's summary fields,
// the aggregate summary, and the per-date breakdown ordered by date ascending.
// Nothing in it is persisted — it is derived from activity rows on each read.
type BudgetReport struct {
	Trip           Trip
	TotalDays      int
	Summary        BudgetSummary
	DailyBreakdown []DailyCost
}
