package launchpad

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slc40 = `{
	"id": "5e9e4501f509094ba4566f84",
	"name": "CCSFS SLC 40",
	"full_name": "Cape Canaveral Space Force Station Space Launch Complex 40",
	"status": "active",
	"locality": "Cape Canaveral",
	"region": "Florida",
	"timezone": "America/New_York",
	"latitude": 28.5618571,
	"longitude": -80.577366,
	"launch_attempts": 99,
	"launch_successes": 97,
	"images": {"large": ["https://i.imgur.com/9oEMXwa.png"]},
	"launches": ["5eb87cddffd86e000604b32f"]
}`

func TestDecodeLaunchpad(t *testing.T) {
	var p Launchpad
	require.NoError(t, json.Unmarshal([]byte(slc40), &p))

	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, "Cape Canaveral Space Force Station Space Launch Complex 40", p.DisplayName())
	assert.Equal(t, "Cape Canaveral, Florida", p.Location())
	assert.Equal(t, 99, p.LaunchAttempts)
	assert.Len(t, p.Images.Large, 1)

	c, ok := p.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 28.5618571, c.Latitude, 1e-9)
	assert.InDelta(t, -80.577366, c.Longitude, 1e-9)
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusUnderConstruction, ParseStatus("Under Construction"))
	assert.Equal(t, StatusRetired, ParseStatus(" retired "))
	assert.Equal(t, StatusUnknown, ParseStatus("exploded"))
	assert.Equal(t, StatusUnknown, ParseStatus(""))
}

func TestMissingCoordinates(t *testing.T) {
	var p Launchpad
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","status":"lost","latitude":null}`), &p))

	c, ok := p.Coordinates()
	assert.False(t, ok)
	assert.Zero(t, c)
	assert.Equal(t, StatusLost, p.Status)
	assert.Empty(t, p.Location())
	assert.Empty(t, p.DisplayName())
}
