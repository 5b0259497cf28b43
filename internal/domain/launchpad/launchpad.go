package launchpad

import (
	"encoding/json"
	"strings"

	"launchlist/internal/geo"
)

// Launchpad is a SpaceX launch site as returned by the v4 launchpads API.
type Launchpad struct {
	ID              string   `json:"id"`
	Name            *string  `json:"name"`
	FullName        *string  `json:"full_name"`
	Status          Status   `json:"status"`
	Type            *string  `json:"type"`
	Locality        *string  `json:"locality"`
	Region          *string  `json:"region"`
	Timezone        *string  `json:"timezone"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	LaunchAttempts  int      `json:"launch_attempts"`
	LaunchSuccesses int      `json:"launch_successes"`
	Wikipedia       *string  `json:"wikipedia"`
	Details         *string  `json:"details"`
	Images          Images   `json:"images"`
	Launches        []string `json:"launches"`
}

type Images struct {
	Large []string `json:"large"`
	Small []string `json:"small,omitempty"`
}

// Status is the operational state of a launchpad.
type Status string

const (
	StatusActive            Status = "active"
	StatusInactive          Status = "inactive"
	StatusUnknown           Status = "unknown"
	StatusRetired           Status = "retired"
	StatusLost              Status = "lost"
	StatusUnderConstruction Status = "under construction"
)

// UnmarshalJSON maps any value outside the known set to StatusUnknown.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// ParseStatus normalises a raw status string.
func ParseStatus(raw string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(raw))); st {
	case StatusActive, StatusInactive, StatusRetired, StatusLost, StatusUnderConstruction:
		return st
	default:
		return StatusUnknown
	}
}

// Coordinates returns the pad position. A pad missing either coordinate
// sits at (0,0) and ok is false.
func (p Launchpad) Coordinates() (c geo.Coordinates, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return geo.Coordinates{}, false
	}
	return geo.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// DisplayName prefers the full name, then the short name.
func (p Launchpad) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Name != nil {
		return *p.Name
	}
	return ""
}

// Location renders "locality, region" leaving out missing parts.
func (p Launchpad) Location() string {
	var parts []string
	for _, s := range []*string{p.Locality, p.Region} {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	return strings.Join(parts, ", ")
}
