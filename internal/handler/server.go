// Package handler implements the HTTP layer of the GlobeTrotter API.
// Handlers are methods on Server, split into domain-specific files
// (auth.go, trip.go, activity.go, budget.go) that all share the same struct.
// Handlers translate HTTP to service calls and back — no business rules here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Signup(ctx context.Context, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, newPassword string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the trip operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Trip, error)
	ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ActivityServicer defines the activity operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd domain.ActivityUpdate) (domain.Activity, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Itinerary(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error)
	PublicItinerary(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error)
}

// BudgetServicer defines the budget operation the budget handler depends on.
type BudgetServicer interface {
	Report(ctx context.Context, tripID, userID uuid.UUID) (domain.BudgetReport, error)
}

// ExportServicer defines the data-export operation the export handler depends on.
type ExportServicer interface {
	ExportByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Pinger is the subset of *pgxpool.Pool the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the service dependencies of all API endpoints.
// Handler methods are in domain-specific files but all operate on this struct.
type Server struct {
	auth       AuthServicer
	trips      TripServicer
	activities ActivityServicer
	budget     BudgetServicer
	export     ExportServicer
	db         Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, trips TripServicer, activities ActivityServicer, budget BudgetServicer, export ExportServicer, db Pinger) *Server {
	return &Server{auth: auth, trips: trips, activities: activities, budget: budget, export: export, db: db}
}

// Routes assembles the API route tree. authn is the Bearer-token middleware;
// it wraps everything except signup, login, health, the OpenAPI document,
// and the public itinerary view.
func (s *Server) Routes(authn func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/me", s.handleMe)
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Delete("/profile", s.handleDeleteAccount)
			r.Put("/password", s.handleChangePassword)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.handleCreateTrip)
			r.Get("/", s.handleListTrips)
			r.Get("/export", s.handleExport)
			r.Get("/{tripID}", s.handleGetTrip)
			r.Put("/{tripID}", s.handleUpdateTrip)
			r.Delete("/{tripID}", s.handleDeleteTrip)
			r.Post("/{tripID}/activities", s.handleCreateActivity)
			r.Get("/{tripID}/activities", s.handleListActivities)
			r.Get("/{tripID}/itinerary", s.handleItinerary)
			r.Get("/{tripID}/budget", s.handleBudget)
		})

		r.Put("/activities/{activityID}", s.handleUpdateActivity)
		r.Delete("/activities/{activityID}", s.handleDeleteActivity)
	})

	r.Get("/public/trips/{tripID}/itinerary", s.handlePublicItinerary)

	return r
}
