package http

import (
	"net/http"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full HTTP surface. Reads are open so polling
// clients work without a token; admin mutations require the admin role and
// contest mutations require any authenticated identity.
func NewRouter(api *API, auth *Auth, guard *GuardHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Get("/state", api.State)
		r.Post("/violations/{teamId}", api.LogViolation)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/submissions", api.Submit)
			r.Post("/submissions/run", api.RunCode)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/teams", api.CreateTeam)
			r.Delete("/teams/{id}", api.DeleteTeam)
			r.Post("/problems", api.AddProblem)
			r.Delete("/problems/{id}", api.DeleteProblem)
			r.Post("/contest/start", api.StartContest)
			r.Post("/contest/stop", api.StopContest)
			r.Post("/reset", api.Reset)
		})
	})

	r.Get("/ws/guard", guard.ServeWS)

	return r
}
