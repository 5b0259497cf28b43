package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"launchlist/internal/geo"
	"launchlist/internal/provider"
	"launchlist/internal/services/launchpad"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GetLaunchpad returns launchpad details, with the distance from lat/lon
// when both are given.
func GetLaunchpad(svc *launchpad.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			http.Error(w, "missing launchpad id", http.StatusBadRequest)
			return
		}
		from, err := parseViewer(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
		defer cancel()

		out, err := svc.Details(ctx, id, from)
		if err != nil {
			if provider.IsNotFound(err) {
				http.Error(w, "launchpad not found", http.StatusNotFound)
				return
			}
			log.Error().Err(err).Str("launchpad_id", id).Msg("launchpad lookup failed")
			var se *launchpad.ServiceError
			if errors.As(err, &se) && errors.Is(err, provider.ErrDataSource) {
				http.Error(w, "failed to fetch data", http.StatusBadGateway)
			} else {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// parseViewer reads the optional lat/lon query pair.
func parseViewer(r *http.Request) (*geo.Coordinates, error) {
	q := r.URL.Query()
	lat, lon := q.Get("lat"), q.Get("lon")
	if lat == "" && lon == "" {
		return nil, nil
	}
	if lat == "" || lon == "" {
		return nil, errors.New("lat and lon must be given together")
	}

	var c geo.Coordinates
	var err error
	if c.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return nil, errors.New("invalid lat")
	}
	if c.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
		return nil, errors.New("invalid lon")
	}
	if !c.Valid() {
		return nil, errors.New("coordinates out of range")
	}
	return &c, nil
}
