package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// envelope is the uniform response body of every endpoint:
// {success, message?, data?} on success, {success: false, error} on failure.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Message string `json:"message"`
}

// respond writes a success envelope. Pass data == nil for message-only responses.
func respond(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError maps a service error onto the taxonomy's HTTP status and
// writes an error envelope. resource names what was being looked up so 404s
// read "trip not found" rather than a bare "not found". Unrecognized errors
// become an opaque 500 and are logged with the request context.
func respondError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, detailAfter(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, detailAfter(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid or expired authentication token")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, fmt.Sprintf("you do not have permission to access this %s", resource))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, detailAfter(err, domain.ErrConflict))
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeError writes an error envelope with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &errorDetail{Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// detailAfter extracts the human-readable part from a wrapped sentinel error:
// "service.TripService.Create: validation error: title is required" → "title is required".
// Falls back to the sentinel text when no detail follows.
func detailAfter(err error, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// decodeJSON decodes the request body into dst, translating decode failures
// into domain.ErrValidation so they surface as 400s.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return id, nil
}
