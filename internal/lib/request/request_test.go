package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

func TestNew(t *testing.T) {
	calc := geometry.NewCalculator()
	ring := geometry.Ring{
		{Latitude: 37.7, Longitude: -122.4},
		{Latitude: 37.8, Longitude: -122.5},
		{Latitude: 37.9, Longitude: -122.3},
	}
	m := calc.Measure(ring)

	req, err := New(ring, m)
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, []geometry.Point(ring), req.Coordinates)
	assert.Equal(t, m.AreaKm2, req.Measurements.Area)
	assert.Equal(t, m.PerimeterKm, req.Measurements.Perimeter)
	assert.WithinDuration(t, time.Now(), req.Timestamp, 5*time.Second)

	// Two requests for the same ring get distinct ids
	other, err := New(ring, m)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, other.ID)
}

func TestNew_RejectsDegenerate(t *testing.T) {
	_, err := New(geometry.Ring{{Latitude: 1, Longitude: 2}}, geometry.Measurement{})
	assert.ErrorIs(t, err, ErrNoRing)
}

func TestMarshalIndent_ExportShape(t *testing.T) {
	calc := geometry.NewCalculator()
	ring := geometry.Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 1, Longitude: 1},
	}
	req, err := New(ring, calc.Measure(ring))
	require.NoError(t, err)

	data, err := req.MarshalIndent()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "coordinates")
	assert.Contains(t, decoded, "measurements")
	assert.Contains(t, decoded, "timestamp")

	var measurements map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["measurements"], &measurements))
	for _, key := range []string{"area", "perimeter", "centroid", "boundingBox", "aspectRatio"} {
		assert.Contains(t, measurements, key)
	}
}
