package launchpad

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchlist/internal/domain/launchpad"
	"launchlist/internal/geo"
	"launchlist/internal/provider"
)

type fakePads map[string]*launchpad.Launchpad

func (f fakePads) GetLaunchpad(_ context.Context, id string) (*launchpad.Launchpad, error) {
	pad, ok := f[id]
	if !ok {
		return nil, provider.Failure("get launchpad", 404, errors.New("not found"))
	}
	return pad, nil
}

func ptr[T any](v T) *T { return &v }

func TestDetailsWithDistance(t *testing.T) {
	svc := NewService(fakePads{
		"vafb": {
			ID:        "vafb",
			Name:      ptr("VAFB SLC 4E"),
			FullName:  ptr("Vandenberg Space Force Base Space Launch Complex 4E"),
			Status:    launchpad.StatusActive,
			Locality:  ptr("Vandenberg Space Force Base"),
			Region:    ptr("California"),
			Latitude:  ptr(34.632093),
			Longitude: ptr(-120.610829),
		},
	})

	ksc := geo.Coordinates{Latitude: 28.6080585, Longitude: -80.6039558}
	d, err := svc.Details(context.Background(), "vafb", &ksc)
	require.NoError(t, err)

	assert.Equal(t, "Vandenberg Space Force Base Space Launch Complex 4E", d.Name)
	assert.Equal(t, "Vandenberg Space Force Base, California", d.Location)
	assert.Equal(t, launchpad.StatusActive, d.Status)
	require.NotNil(t, d.DistanceKm)
	assert.InDelta(t, 3800, *d.DistanceKm, 100)
	assert.Equal(t, geo.FormatDistance(*d.DistanceKm), d.Distance)
}

func TestDetailsWithoutViewerPosition(t *testing.T) {
	svc := NewService(fakePads{"p": {ID: "p", Latitude: ptr(1.0), Longitude: ptr(2.0)}})

	d, err := svc.Details(context.Background(), "p", nil)
	require.NoError(t, err)

	assert.Nil(t, d.DistanceKm)
	assert.Empty(t, d.Distance)
	assert.Equal(t, geo.Coordinates{Latitude: 1, Longitude: 2}, d.Coordinates)
}

func TestDetailsPadWithoutCoordinatesMeasuresFromOrigin(t *testing.T) {
	svc := NewService(fakePads{"p": {ID: "p"}})

	from := geo.Coordinates{Latitude: 0, Longitude: 1}
	d, err := svc.Details(context.Background(), "p", &from)
	require.NoError(t, err)

	require.NotNil(t, d.DistanceKm)
	assert.InDelta(t, 111.19, *d.DistanceKm, 0.1)
}

func TestDetailsAntipodalDistanceIsFinite(t *testing.T) {
	svc := NewService(fakePads{"p": {ID: "p", Latitude: ptr(-88.5), Longitude: ptr(10.0)}})

	from := geo.Coordinates{Latitude: 88.5, Longitude: -170}
	d, err := svc.Details(context.Background(), "p", &from)
	require.NoError(t, err)

	require.NotNil(t, d.DistanceKm)
	assert.False(t, math.IsNaN(*d.DistanceKm))
	assert.InDelta(t, math.Pi*geo.EarthRadiusKm, *d.DistanceKm, 1e-3)
	_, err = json.Marshal(d)
	assert.NoError(t, err)
}

func TestDetailsWrapsSourceFailure(t *testing.T) {
	svc := NewService(fakePads{})

	_, err := svc.Details(context.Background(), "missing", nil)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get_launchpad", se.Op)
	assert.ErrorIs(t, err, provider.ErrDataSource)
	assert.True(t, provider.IsNotFound(err))
}
