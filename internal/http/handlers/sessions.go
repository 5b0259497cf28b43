package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"launchlist/internal/domain/launch"
	middlewarex "launchlist/internal/http/middleware"
	"launchlist/internal/services/feed"
	"launchlist/internal/services/session"

	"github.com/rs/zerolog/log"
)

type searchReq struct {
	Query *string `json:"query"`
}

// OpenSession mounts a new launch list and starts its initial load.
func OpenSession(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := reg.Open()
		writeJSON(w, http.StatusCreated, renderList(s, s.Feed().State(), nil))
	}
}

// CloseSession unmounts the list; a late response is dropped.
func CloseSession(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := middlewarex.Session(r.Context())
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err := reg.Close(s.ID); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetSession renders the list and hands out pending notices once.
func GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := middlewarex.Session(r.Context())
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		st := s.Feed().State()
		writeJSON(w, http.StatusOK, renderList(s, st, s.DrainNotices()))
	}
}

// Intent forwards a user gesture to the session's controller. The reply
// is the state right after the gesture was accepted; results arrive
// asynchronously.
func Intent(apply func(*feed.Controller[launch.Launch])) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := middlewarex.Session(r.Context())
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		apply(s.Feed())
		writeJSON(w, http.StatusAccepted, renderList(s, s.Feed().State(), nil))
	}
}

// LoadInitial reloads the first page.
func LoadInitial() http.HandlerFunc {
	return Intent(func(c *feed.Controller[launch.Launch]) { c.LoadInitial() })
}

// LoadMore appends the next page; fired when the client nears the end.
func LoadMore() http.HandlerFunc {
	return Intent(func(c *feed.Controller[launch.Launch]) { c.LoadMore() })
}

// Refresh clears the search and reloads the first page.
func Refresh() http.HandlerFunc {
	return Intent(func(c *feed.Controller[launch.Launch]) { c.Refresh() })
}

// Search records the query; filtering happens after the debounce window.
func Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in searchReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if in.Query == nil {
			http.Error(w, "missing query", http.StatusBadRequest)
			return
		}
		Intent(func(c *feed.Controller[launch.Launch]) { c.Search(*in.Query) })(w, r)
	}
}

// writeJSON encodes v before committing status, so an encoding failure
// still becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
