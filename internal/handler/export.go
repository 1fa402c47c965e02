// Package handler — export.go implements GET /trips/export.
// Returns all of the caller's trips and activities as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_destination", "trip_start_date", "trip_end_date",
	"activity_title", "activity_date", "activity_time", "activity_description", "activity_cost",
}

// handleExport handles GET /trips/export.
// It returns a flat table of every trip and activity the caller owns.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	rows, err := s.export.ExportByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "export")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}
	writeJSONExport(w, rows)
}

// writeJSONExport serializes rows as a bare JSON array.
// The export is a download, not an envelope-wrapped API payload.
func writeJSONExport(w http.ResponseWriter, rows []domain.ExportRow) {
	out := make([]exportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRowToResponse(r))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

// writeCSVExport encodes rows as CSV with a fixed header row.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips-export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type exportRowResponse struct {
	TripID              string              `json:"trip_id"`
	TripTitle           string              `json:"trip_title"`
	TripDestination     string              `json:"trip_destination"`
	TripStartDate       openapi_types.Date  `json:"trip_start_date"`
	TripEndDate         openapi_types.Date  `json:"trip_end_date"`
	ActivityTitle       *string             `json:"activity_title,omitempty"`
	ActivityDate        *openapi_types.Date `json:"activity_date,omitempty"`
	ActivityTime        *string             `json:"activity_time,omitempty"`
	ActivityDescription *string             `json:"activity_description,omitempty"`
	ActivityCost        *float64            `json:"activity_cost,omitempty"`
}

// exportRowToResponse maps a domain.ExportRow for serialization.
// Empty activity fields become nil pointers (omitted in JSON).
func exportRowToResponse(r domain.ExportRow) exportRowResponse {
	row := exportRowResponse{
		TripID:          r.TripID,
		TripTitle:       r.TripTitle,
		TripDestination: r.TripDestination,
		TripStartDate:   mustParseDate(r.TripStartDate),
		TripEndDate:     mustParseDate(r.TripEndDate),
		ActivityCost:    r.ActivityCost,
	}

	if r.ActivityDate != "" {
		d := mustParseDate(r.ActivityDate)
		row.ActivityDate = &d
	}
	if r.ActivityTitle != "" {
		row.ActivityTitle = &r.ActivityTitle
	}
	if r.ActivityTime != "" {
		row.ActivityTime = &r.ActivityTime
	}
	if r.ActivityDescription != "" {
		row.ActivityDescription = &r.ActivityDescription
	}
	return row
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A nil cost is encoded as an empty string.
func exportRowToCSVRecord(r domain.ExportRow) []string {
	cost := ""
	if r.ActivityCost != nil {
		cost = strconv.FormatFloat(*r.ActivityCost, 'f', 2, 64)
	}
	return []string{
		r.TripID,
		r.TripTitle,
		r.TripDestination,
		r.TripStartDate,
		r.TripEndDate,
		r.ActivityTitle,
		r.ActivityDate,
		r.ActivityTime,
		r.ActivityDescription,
		cost,
	}
}
