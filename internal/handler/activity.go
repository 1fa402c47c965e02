package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// handleCreateActivity handles POST /trips/{tripID}/activities.
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "activity")
		return
	}

	activity, err := s.activities.Create(r.Context(), userID, domain.Activity{
		TripID:      tripID,
		Date:        req.Date.Time,
		Time:        req.Time,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusCreated, "Activity created successfully", map[string]any{"activity": activityToResponse(activity)})
}

// handleListActivities handles GET /trips/{tripID}/activities.
// Activities come back ordered by (date, time) ascending — the itinerary order.
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	activities, err := s.activities.ListByTrip(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	data := make([]activityResponse, len(activities))
	for i, a := range activities {
		data[i] = activityToResponse(a)
	}

	respond(w, http.StatusOK, "", map[string]any{"activities": data})
}

// handleUpdateActivity handles PUT /activities/{activityID}.
func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	activityID, err := pathID(r, "activityID")
	if err != nil {
		respondError(w, r, err, "activity")
		return
	}

	var req updateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "activity")
		return
	}

	activity, err := s.activities.Update(r.Context(), activityID, userID, domain.ActivityUpdate{
		Date:        dateToTime(req.Date),
		Time:        req.Time,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		respondError(w, r, err, "activity")
		return
	}

	respond(w, http.StatusOK, "Activity updated successfully", map[string]any{"activity": activityToResponse(activity)})
}

// handleDeleteActivity handles DELETE /activities/{activityID}.
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	activityID, err := pathID(r, "activityID")
	if err != nil {
		respondError(w, r, err, "activity")
		return
	}

	if err := s.activities.Delete(r.Context(), activityID, userID); err != nil {
		respondError(w, r, err, "activity")
		return
	}

	respond(w, http.StatusOK, "Activity deleted successfully", nil)
}

// handleItinerary handles GET /trips/{tripID}/itinerary.
func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	trip, days, err := s.activities.Itinerary(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	respond(w, http.StatusOK, "", map[string]any{
		"trip": tripToResponse(trip),
		"days": daysToResponse(days),
	})
}

// handlePublicItinerary handles GET /public/trips/{tripID}/itinerary.
// No authentication and no ownership check: this backs share-by-link viewing.
// Only safe fields go out — no user IDs, no timestamps.
func (s *Server) handlePublicItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	trip, days, err := s.activities.PublicItinerary(r.Context(), tripID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	publicDays := make([]publicItineraryDay, len(days))
	for i, d := range days {
		pd := publicItineraryDay{Date: openapi_types.Date{Time: d.Date}}
		for _, a := range d.Activities {
			pd.Activities = append(pd.Activities, publicActivity{
				ID:          a.ID,
				Time:        a.Time,
				Title:       a.Title,
				Description: a.Description,
			})
		}
		publicDays[i] = pd
	}

	respond(w, http.StatusOK, "", map[string]any{
		"trip": publicTrip{
			ID:          trip.ID,
			Title:       trip.Title,
			Destination: trip.Destination,
			StartDate:   openapi_types.Date{Time: trip.StartDate},
			EndDate:     openapi_types.Date{Time: trip.EndDate},
		},
		"days": publicDays,
	})
}

// --- request / response types ------------------------------------------------

type createActivityRequest struct {
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Cost        *float64           `json:"cost"`
}

type updateActivityRequest struct {
	Date        *openapi_types.Date `json:"date"`
	Time        *string             `json:"time"`
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Cost        *float64            `json:"cost"`
}

type activityResponse struct {
	ID          uuid.UUID          `json:"id"`
	TripID      uuid.UUID          `json:"trip_id"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Cost        *float64           `json:"cost,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type itineraryDayResponse struct {
	Date       openapi_types.Date `json:"date"`
	Activities []activityResponse `json:"activities"`
}

type publicTrip struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
}

type publicItineraryDay struct {
	Date       openapi_types.Date `json:"date"`
	Activities []publicActivity   `json:"activities"`
}

type publicActivity struct {
	ID          uuid.UUID `json:"id"`
	Time        string    `json:"time"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// activityToResponse converts a domain.Activity for serialization.
func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		TripID:      a.TripID,
		Date:        openapi_types.Date{Time: a.Date},
		Time:        a.Time,
		Title:       a.Title,
		Description: a.Description,
		Cost:        a.Cost,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// daysToResponse converts grouped itinerary days for serialization.
func daysToResponse(days []domain.ItineraryDay) []itineraryDayResponse {
	out := make([]itineraryDayResponse, len(days))
	for i, d := range days {
		rd := itineraryDayResponse{Date: openapi_types.Date{Time: d.Date}, Activities: []activityResponse{}}
		for _, a := range d.Activities {
			rd.Activities = append(rd.Activities, activityToResponse(a))
		}
		out[i] = rd
	}
	return out
}
