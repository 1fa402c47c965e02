package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/middleware"
)

// handleSignup handles POST /auth/signup.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "user")
		return
	}

	user, token, err := s.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":  userToResponse(user),
		"token": token,
	})
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "user")
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "Login successful", map[string]any{
		"user":  userToResponse(user),
		"token": token,
	})
}

// handleMe handles GET /auth/me: a fresh lookup of the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	user, err := s.auth.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "", map[string]any{"user": userToResponse(user)})
}

// handleGetProfile handles GET /auth/profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	user, err := s.auth.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "Profile retrieved successfully", map[string]any{"user": userToResponse(user)})
}

// handleUpdateProfile handles PUT /auth/profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "user")
		return
	}

	user, err := s.auth.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		Email:       req.Email,
		FullName:    req.FullName,
		AvatarURL:   req.AvatarURL,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": userToResponse(user)})
}

// handleChangePassword handles PUT /auth/password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "user")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "Password changed successfully", nil)
}

// handleDeleteAccount handles DELETE /auth/profile.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := mustUserID(r)

	if err := s.auth.DeleteAccount(r.Context(), userID); err != nil {
		respondError(w, r, err, "user")
		return
	}

	respond(w, http.StatusOK, "Account deleted successfully", nil)
}

// mustUserID reads the authenticated user ID placed in the context by the
// auth middleware. Routes calling this are always registered behind it, so a
// missing value is a programming error — the zero UUID matches no rows.
func mustUserID(r *http.Request) uuid.UUID {
	id, _ := middleware.UserID(r.Context())
	return id
}

// --- request / response types ------------------------------------------------

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Email       *string        `json:"email"`
	FullName    *string        `json:"full_name"`
	AvatarURL   *string        `json:"avatar_url"`
	Preferences map[string]any `json:"preferences"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type userResponse struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name,omitempty"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// userToResponse converts a domain.User for serialization.
// The password hash never crosses this boundary.
func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		AvatarURL:   u.AvatarURL,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
