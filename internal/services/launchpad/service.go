package launchpad

import (
	"context"

	"launchlist/internal/domain/launchpad"
	"launchlist/internal/geo"
	"launchlist/internal/provider"

	"github.com/rs/zerolog/log"
)

// Service resolves launchpad details for the detail view
type Service struct {
	src provider.LaunchpadSource
}

// NewService creates a new launchpad service
func NewService(src provider.LaunchpadSource) *Service {
	return &Service{src: src}
}

// Details is a launchpad together with its distance from the viewer, when
// the viewer's position is known.
type Details struct {
	Launchpad   *launchpad.Launchpad `json:"launchpad"`
	Name        string               `json:"name"`
	Location    string               `json:"location"`
	Status      launchpad.Status     `json:"status"`
	Coordinates geo.Coordinates      `json:"coordinates"`
	DistanceKm  *float64             `json:"distanceKm,omitempty"`
	Distance    string               `json:"distance,omitempty"`
}

// Details fetches launchpad id. If from is non-nil the great-circle
// distance to the pad is included; a pad without coordinates is measured
// from (0,0).
func (s *Service) Details(ctx context.Context, id string, from *geo.Coordinates) (*Details, error) {
	pad, err := s.src.GetLaunchpad(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "get_launchpad", Err: err}
	}

	coords, ok := pad.Coordinates()
	if !ok {
		log.Debug().Str("launchpad_id", pad.ID).Msg("launchpad has no coordinates")
	}

	out := &Details{
		Launchpad:   pad,
		Name:        pad.DisplayName(),
		Location:    pad.Location(),
		Status:      pad.Status,
		Coordinates: coords,
	}
	if from != nil {
		km := geo.Distance(*from, coords)
		out.DistanceKm = &km
		out.Distance = geo.FormatDistance(km)
	}
	return out, nil
}

// ServiceError represents a launchpad service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "launchpad service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
