package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/tranum/internal/middleware"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/service"
)

// TravelerService defines the per-traveler record operations required by
// the HTTP handlers. Every call is scoped to userID.
type TravelerService interface {
	Trips(ctx context.Context, userID string) []models.Trip
	AddTrip(ctx context.Context, userID string, t models.Trip) (models.Trip, error)
	UpdateTrip(ctx context.Context, userID string, t models.Trip) error
	DeleteTrip(ctx context.Context, userID, id string) error
	TotalSpent(ctx context.Context, u models.User) (float64, string)

	HealthRecords(ctx context.Context, userID string) []models.HealthRecord
	AddHealthRecord(ctx context.Context, userID string, h models.HealthRecord) (models.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, userID string, h models.HealthRecord) error
	DeleteHealthRecord(ctx context.Context, userID, id string) error

	Documents(ctx context.Context, userID string) []service.DocumentView
	AddDocument(ctx context.Context, userID string, d models.Document) (models.Document, error)
	UpdateDocument(ctx context.Context, userID string, d models.Document) error
	DeleteDocument(ctx context.Context, userID, id string) error

	Luggage(ctx context.Context, userID string) []models.Luggage
	AddLuggage(ctx context.Context, userID string, l models.Luggage) (models.Luggage, error)
	UpdateLuggage(ctx context.Context, userID string, l models.Luggage) error
	DeleteLuggage(ctx context.Context, userID, id string) error

	Summary(ctx context.Context, userID string) service.Summary
}

// TravelerHandler serves the signed-in traveler's own records.
type TravelerHandler struct {
	Service TravelerService
}

// TotalResponse is the traveler's spend in their own currency.
type TotalResponse struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

func userID(r *http.Request) string {
	u, _ := middleware.UserFromContext(r.Context())
	return u.ID
}

func list[T any](fetch func(ctx context.Context, userID string) []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fetch(r.Context(), userID(r)))
	}
}

func create[T any](add func(ctx context.Context, userID string, v T) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v T
		if !decode(r, &v) {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		created, err := add(r.Context(), userID(r), v)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// update takes the record id from the URL, overriding any id in the body.
func update[T any](apply func(ctx context.Context, userID string, v T) error, setID func(*T, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v T
		if !decode(r, &v) {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		setID(&v, chi.URLParam(r, "id"))
		if err := apply(r.Context(), userID(r), v); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func remove(del func(ctx context.Context, userID, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := del(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Routes mounts the record endpoints on r.
func (h *TravelerHandler) Routes(r chi.Router) {
	s := h.Service

	r.Get("/trips", list(s.Trips))
	r.Post("/trips", create(s.AddTrip))
	r.Get("/trips/total", h.TotalSpent)
	r.Put("/trips/{id}", update(s.UpdateTrip, func(t *models.Trip, id string) { t.ID = id }))
	r.Delete("/trips/{id}", remove(s.DeleteTrip))

	r.Get("/health", list(s.HealthRecords))
	r.Post("/health", create(s.AddHealthRecord))
	r.Put("/health/{id}", update(s.UpdateHealthRecord, func(h *models.HealthRecord, id string) { h.ID = id }))
	r.Delete("/health/{id}", remove(s.DeleteHealthRecord))

	r.Get("/documents", list(s.Documents))
	r.Post("/documents", create(s.AddDocument))
	r.Put("/documents/{id}", update(s.UpdateDocument, func(d *models.Document, id string) { d.ID = id }))
	r.Delete("/documents/{id}", remove(s.DeleteDocument))

	r.Get("/luggage", list(s.Luggage))
	r.Post("/luggage", create(s.AddLuggage))
	r.Put("/luggage/{id}", update(s.UpdateLuggage, func(l *models.Luggage, id string) { l.ID = id }))
	r.Delete("/luggage/{id}", remove(s.DeleteLuggage))

	r.Get("/summary", h.Summary)
}

func (h *TravelerHandler) TotalSpent(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())
	total, code := h.Service.TotalSpent(r.Context(), u)
	writeJSON(w, http.StatusOK, TotalResponse{Total: total, Currency: code})
}

func (h *TravelerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Summary(r.Context(), userID(r)))
}
