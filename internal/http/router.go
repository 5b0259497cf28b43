package httpx

import (
	"encoding/json"
	"net/http"

	"launchlist/internal/config"
	"launchlist/internal/http/handlers"
	middlewarex "launchlist/internal/http/middleware"
	"launchlist/internal/services/launchpad"
	"launchlist/internal/services/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config           config.Cfg
	Sessions         *session.Registry
	LaunchpadService *launchpad.Service
}

// NewRouter creates the HTTP router for the launch list API
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middlewarex.AccessLog(log.Logger)...)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "ok",
			"env":      deps.Config.App.Env,
			"sessions": deps.Sessions.Len(),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", handlers.OpenSession(deps.Sessions))

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(middlewarex.LoadSession(deps.Sessions))

			r.Get("/", handlers.GetSession())
			r.Delete("/", handlers.CloseSession(deps.Sessions))
			r.Post("/load", handlers.LoadInitial())
			r.Post("/more", handlers.LoadMore())
			r.Post("/refresh", handlers.Refresh())
			r.Post("/search", handlers.Search())
		})

		r.Get("/launchpads/{id}", handlers.GetLaunchpad(deps.LaunchpadService))
	})

	return r
}
