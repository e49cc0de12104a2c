package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/tranum/internal/currency"
	"github.com/atinyakov/tranum/internal/hash"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/service"
)

// userResponse hides the stored credential.
type userResponse struct {
	models.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

func publicUser(u models.User) userResponse {
	return userResponse{User: u}
}

func publicUsers(us []models.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, publicUser(u))
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// writeError maps service errors onto status codes. Anything unknown is a
// storage fault.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrUserExists):
		http.Error(w, "user already exists", http.StatusConflict)
	case errors.Is(err, service.ErrInvalidAdminCode), errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, hash.ErrFailedToHashPassword):
		// bcrypt refuses passwords longer than 72 bytes.
		http.Error(w, "password cannot be used", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, currency.ErrUnconvertible):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
