package geo

import (
	"math"
	"strconv"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether c lies within the usual latitude/longitude ranges.
func (c Coordinates) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude) &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// HaversineKm returns the great-circle distance in kilometres between two
// points given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a just outside [0,1] near antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Distance is HaversineKm for two Coordinates.
func Distance(from, to Coordinates) float64 {
	return HaversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// FormatDistance renders km for display: metres below 1 km, one decimal
// below 100 km, whole kilometres above that. The unit is picked after
// rounding, so 0.9996 shows as "1.0km" and 99.96 as "100km".
func FormatDistance(km float64) string {
	if m := math.Round(km * 1000); m < 1000 {
		return strconv.FormatFloat(m, 'f', 0, 64) + "m"
	}
	if tenths := math.Round(km*10) / 10; tenths < 100 {
		return strconv.FormatFloat(tenths, 'f', 1, 64) + "km"
	}
	return strconv.FormatFloat(math.Round(km), 'f', 0, 64) + "km"
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
