package middlewarex

import (
	"errors"
	"net/http"

	"launchlist/internal/services/session"

	"github.com/go-chi/chi/v5"
)

// LoadSession resolves the {sessionID} URL param and stores the session in
// the request context.
func LoadSession(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := reg.Get(chi.URLParam(r, "sessionID"))
			if errors.Is(err, session.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
