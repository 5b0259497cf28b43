package launch

import "time"

// Launch is a single SpaceX launch as returned by the v5 launches API.
// Only the fields the list and detail views use are decoded.
type Launch struct {
	ID            string        `json:"id"`
	FlightNumber  int           `json:"flight_number"`
	Name          string        `json:"name"`
	DateUTC       string        `json:"date_utc"`
	DateUnix      int64         `json:"date_unix"`
	DateLocal     string        `json:"date_local"`
	DatePrecision DatePrecision `json:"date_precision"`
	Upcoming      bool          `json:"upcoming"`
	Success       *bool         `json:"success"`
	Details       *string       `json:"details"`
	Rocket        *string       `json:"rocket"`
	Launchpad     *string       `json:"launchpad"`
	Links         *Links        `json:"links"`
}

// DatePrecision tells how precise the launch date is.
type DatePrecision string

const (
	PrecisionHalf    DatePrecision = "half"
	PrecisionQuarter DatePrecision = "quarter"
	PrecisionYear    DatePrecision = "year"
	PrecisionMonth   DatePrecision = "month"
	PrecisionDay     DatePrecision = "day"
	PrecisionHour    DatePrecision = "hour"
)

type Links struct {
	Patch     *Patch  `json:"patch"`
	Webcast   *string `json:"webcast"`
	YoutubeID *string `json:"youtube_id"`
	Article   *string `json:"article"`
	Wikipedia *string `json:"wikipedia"`
}

type Patch struct {
	Small *string `json:"small"`
	Large *string `json:"large"`
}

// Status labels shown next to a launch.
const (
	LabelSuccess  = "Success"
	LabelUpcoming = "Upcoming"
	LabelNA       = "N/A"
)

// Identity returns the launch id; it is the dedupe key in list feeds.
func (l Launch) Identity() string { return l.ID }

// SearchText returns the text matched by list search.
func (l Launch) SearchText() string { return l.Name }

// StatusLabel summarises the launch outcome. A successful launch wins over
// the upcoming flag.
func (l Launch) StatusLabel() string {
	switch {
	case l.Success != nil && *l.Success:
		return LabelSuccess
	case l.Upcoming:
		return LabelUpcoming
	default:
		return LabelNA
	}
}

// PatchImage returns the small mission patch URL, if any.
func (l Launch) PatchImage() string {
	if l.Links == nil || l.Links.Patch == nil || l.Links.Patch.Small == nil {
		return ""
	}
	return *l.Links.Patch.Small
}

// LaunchpadID returns the referenced launchpad id, or "".
func (l Launch) LaunchpadID() string {
	if l.Launchpad == nil {
		return ""
	}
	return *l.Launchpad
}

// FormatUnixDate renders a unix timestamp (seconds) as "January 2, 2006" in UTC.
func FormatUnixDate(unix int64) string {
	if unix == 0 {
		return "Invalid date"
	}
	return time.Unix(unix, 0).UTC().Format("January 2, 2006")
}
