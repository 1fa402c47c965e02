package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "trip")
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.Trip{
		UserID:      userID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusCreated, "Trip created successfully", map[string]any{"trip": tripToResponse(trip)})
}

// handleListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListByUserPaged(r.Context(), userID, params)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}

	respond(w, http.StatusOK, "", map[string]any{
		"trips": data,
		"pagination": map[string]any{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusOK, "", map[string]any{"trip": tripToResponse(trip)})
}

// handleUpdateTrip handles PUT /trips/{tripID}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "trip")
		return
	}

	trip, err := s.trips.Update(r.Context(), tripID, userID, domain.TripUpdate{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   dateToTime(req.StartDate),
		EndDate:     dateToTime(req.EndDate),
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusOK, "Trip updated successfully", map[string]any{"trip": tripToResponse(trip)})
}

// handleDeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	if err := s.trips.Delete(r.Context(), tripID, userID); err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusOK, "Trip deleted successfully", nil)
}

// --- request / response types ------------------------------------------------

type createTripRequest struct {
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
}

type updateTripRequest struct {
	Title       *string             `json:"title"`
	Destination *string             `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
}

type tripResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// tripToResponse converts a domain.Trip for serialization.
// openapi_types.Date renders dates as plain YYYY-MM-DD strings.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// dateToTime unwraps an optional wire date into an optional time.
func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// queryInt parses an optional integer query parameter, nil when absent or malformed.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
