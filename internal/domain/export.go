package domain

// ExportRow is a single row in a user's full trip-data export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield
// one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields — repeated for every activity on the trip.
	TripID          string
	TripTitle       string
	TripDestination string
	TripStartDate   string // "2006-01-02" formatted date
	TripEndDate     string

	// Activity fields — zero values when the trip has no activities.
	ActivityTitle       string
	ActivityDate        string // "2006-01-02", empty when the trip has no activities
	ActivityTime        string // "HH:MM:SS"
	ActivityDescription string
	ActivityCost        *float64
}
