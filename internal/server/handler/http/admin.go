package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/service"
)

// AdminService defines the traveler management operations required by the
// admin endpoints.
type AdminService interface {
	Travelers(ctx context.Context, query string) []models.User
	Stats(ctx context.Context) service.Stats
	SetStatus(ctx context.Context, id string, status models.Status) (models.User, error)
	UpdateTraveler(ctx context.Context, u models.User) (models.User, error)
	DeleteTraveler(ctx context.Context, id string) error
}

type AdminHandler struct {
	Service AdminService
}

// StatusRequest is the JSON payload for SetStatus.
type StatusRequest struct {
	Status models.Status `json:"status"`
}

// Routes mounts the admin endpoints on r.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get("/travelers", h.Travelers)
	r.Get("/stats", h.Stats)
	r.Put("/travelers/{id}", h.UpdateTraveler)
	r.Delete("/travelers/{id}", h.DeleteTraveler)
	r.Put("/travelers/{id}/status", h.SetStatus)
}

// Travelers lists travelers matching the optional q parameter.
func (h *AdminHandler) Travelers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, publicUsers(h.Service.Travelers(r.Context(), r.URL.Query().Get("q"))))
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Stats(r.Context()))
}

func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decode(r, &req) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u, err := h.Service.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(u))
}

func (h *AdminHandler) UpdateTraveler(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if !decode(r, &u) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u.ID = chi.URLParam(r, "id")
	updated, err := h.Service.UpdateTraveler(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(updated))
}

func (h *AdminHandler) DeleteTraveler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTraveler(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
