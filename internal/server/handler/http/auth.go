// Package http provides the JSON handlers and router for the travel API.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/tranum/internal/middleware"
	"github.com/atinyakov/tranum/internal/models"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	LoginAs(ctx context.Context, email, password string, role models.Role) (models.User, error)
	Register(ctx context.Context, fullName, email, password string) (models.User, error)
	RegisterAdmin(ctx context.Context, fullName, email, password, secretCode string) (models.User, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	Current() (models.User, bool)
}

// AuthHandler handles registration, login and the signed-in profile.
type AuthHandler struct {
	AuthService AuthService
}

// RegisterRequest is the JSON payload for both registration endpoints.
type RegisterRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SecretCode string `json:"secretCode,omitempty"`
}

func (req RegisterRequest) valid() bool {
	return strings.TrimSpace(req.FullName) != "" && strings.TrimSpace(req.Email) != "" && req.Password != ""
}

// LoginRequest is the JSON payload for login. Role is optional; when set
// the account must have that role.
type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// Register creates a traveler account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decode(r, &req) || !req.valid() {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u, err := h.AuthService.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, publicUser(u))
}

// RegisterAdmin creates an admin account when the secret code matches.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decode(r, &req) || !req.valid() {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u, err := h.AuthService.RegisterAdmin(r.Context(), req.FullName, req.Email, req.Password, req.SecretCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, publicUser(u))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(r, &req) || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var (
		u   models.User
		err error
	)
	switch req.Role {
	case "":
		u, err = h.AuthService.Login(r.Context(), req.Email, req.Password)
	case models.RoleTraveler, models.RoleAdmin:
		u, err = h.AuthService.LoginAs(r.Context(), req.Email, req.Password, req.Role)
	default:
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(u))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, publicUser(u))
}

// UpdateMe merges the posted profile fields into the signed-in user. The id,
// role, credential, account status, tier and travel reference number cannot
// be changed here.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.UserFromContext(r.Context())
	next := current
	if !decode(r, &next) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	next.ID = current.ID
	next.Role = current.Role
	next.PasswordHash = current.PasswordHash
	next.Status = current.Status
	next.Tier = current.Tier
	next.TRNumber = current.TRNumber
	if strings.TrimSpace(next.Email) == "" {
		next.Email = current.Email
	}

	u, err := h.AuthService.UpdateUser(r.Context(), next)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(u))
}
