package http

import (
	"net/http"

	"github.com/atinyakov/tranum/internal/middleware"
	"github.com/atinyakov/tranum/internal/models"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the travel API under /api.
//
// Routes:
//
//	POST /api/register, /api/register/admin, /api/login   public
//	GET  /api/currency/convert                           public
//	POST /api/logout, GET/PUT /api/me                    any signed-in user
//	/api/trips, /api/health, /api/documents,
//	/api/luggage, /api/summary                           travelers
//	/api/admin/...                                       admins
//
// Bodies must be JSON. Every request is logged.
func NewRouter(
	authHandler *AuthHandler,
	travelerHandler *TravelerHandler,
	adminHandler *AdminHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/register/admin", authHandler.RegisterAdmin)
		r.Post("/login", authHandler.Login)
		r.Get("/currency/convert", Convert)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(authHandler.AuthService))

			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Put("/me", authHandler.UpdateMe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleTraveler))
				travelerHandler.Routes(r)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				adminHandler.Routes(r)
			})
		})
	})

	return r
}
