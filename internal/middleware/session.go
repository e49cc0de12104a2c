package middleware

import (
	"context"
	"net/http"

	"github.com/atinyakov/tranum/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionSource reports the signed-in user, if any.
type SessionSource interface {
	Current() (models.User, bool)
}

// RequireSession rejects requests while nobody is signed in. The signed-in
// user is stored in the request context for downstream handlers.
func RequireSession(src SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := src.Current()
			if !ok {
				http.Error(w, "not signed in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireSession.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "not signed in", http.StatusUnauthorized)
				return
			}
			if u.Role != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext extracts the user stored by RequireSession.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
