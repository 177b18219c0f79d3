package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Area_UnitSquareAtEquator(t *testing.T) {
	calc := NewCalculator()

	// 1°x1° square at the equator; cos(0)=1 so each side is ~111.32 km
	ring := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 0},
	}

	area := calc.Area(ring)
	expected := 111.32 * 111.32

	assert.InEpsilon(t, expected, area, 0.01, "Unit square at equator should be ~111.32² km²")
}

func TestCalculator_Area_OrientationIndependent(t *testing.T) {
	calc := NewCalculator()

	ring := Ring{
		{Latitude: 38.0675, Longitude: -120.5436},
		{Latitude: 38.1391, Longitude: -120.4561},
		{Latitude: 38.2458, Longitude: -120.3486},
		{Latitude: 38.2100, Longitude: -120.5800},
	}

	forward := calc.Area(ring)
	backward := calc.Area(ring.Reverse())

	assert.GreaterOrEqual(t, forward, 0.0, "Area should never be negative")
	assert.InDelta(t, forward, backward, 1e-9, "Area should not depend on winding order")
}

func TestCalculator_Area_InsufficientVertices(t *testing.T) {
	calc := NewCalculator()

	assert.Zero(t, calc.Area(nil))
	assert.Zero(t, calc.Area(Ring{{Latitude: 1, Longitude: 1}}))
	assert.Zero(t, calc.Area(Ring{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}}))
}

func TestCalculator_Perimeter_SmallSquare(t *testing.T) {
	calc := NewCalculator()

	// ~100m sides near Murphys, CA: 100m of latitude is ~0.0008993°,
	// 100m of longitude at 38.14°N is ~0.0011426°
	const dLat = 100.0 / 111194.9
	const dLng = 100.0 / (111194.9 * 0.78649) // cos(38.1391°)
	base := Point{Latitude: 38.1391, Longitude: -120.4561}
	ring := Ring{
		base,
		{Latitude: base.Latitude, Longitude: base.Longitude + dLng},
		{Latitude: base.Latitude + dLat, Longitude: base.Longitude + dLng},
		{Latitude: base.Latitude + dLat, Longitude: base.Longitude},
	}

	perimeter := calc.Perimeter(ring)
	assert.InEpsilon(t, 0.4, perimeter, 0.05, "100m square should have ~0.4km perimeter")
}

func TestCalculator_Perimeter_InvariantUnderRotationAndReversal(t *testing.T) {
	calc := NewCalculator()

	ring := Ring{
		{Latitude: 38.0675, Longitude: -120.5436},
		{Latitude: 38.1391, Longitude: -120.4561},
		{Latitude: 38.2458, Longitude: -120.3486},
		{Latitude: 38.5347, Longitude: -119.8075},
	}

	base := calc.Perimeter(ring)
	require.Greater(t, base, 0.0)

	for shift := 1; shift < len(ring); shift++ {
		rotated := append(Ring{}, ring[shift:]...)
		rotated = append(rotated, ring[:shift]...)
		assert.InDelta(t, base, calc.Perimeter(rotated), 1e-9, "Perimeter should be invariant under cyclic rotation")
	}

	assert.InDelta(t, base, calc.Perimeter(ring.Reverse()), 1e-9, "Perimeter should be invariant under reversal")
}

func TestCalculator_Perimeter_InsufficientVertices(t *testing.T) {
	calc := NewCalculator()

	assert.Zero(t, calc.Perimeter(nil))
	assert.Zero(t, calc.Perimeter(Ring{{Latitude: 1, Longitude: 1}}))
}

func TestCalculator_Centroid(t *testing.T) {
	calc := NewCalculator()

	assert.Nil(t, calc.Centroid(nil), "Empty ring has no centroid")

	ring := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 2},
		{Latitude: 2, Longitude: 2},
		{Latitude: 2, Longitude: 0},
	}
	centroid := calc.Centroid(ring)
	require.NotNil(t, centroid)
	assert.InDelta(t, 1.0, centroid.Latitude, 1e-9)
	assert.InDelta(t, 1.0, centroid.Longitude, 1e-9)
}

func TestCalculator_BoundingBox(t *testing.T) {
	calc := NewCalculator()

	assert.Nil(t, calc.BoundingBox(nil), "Empty ring has no bounding box")

	ring := Ring{
		{Latitude: 38.0675, Longitude: -120.5436},
		{Latitude: 38.1391, Longitude: -120.4561},
		{Latitude: 38.2458, Longitude: -120.3486},
	}
	box := calc.BoundingBox(ring)
	require.NotNil(t, box)
	assert.Equal(t, 38.0675, box.MinLat)
	assert.Equal(t, 38.2458, box.MaxLat)
	assert.Equal(t, -120.5436, box.MinLng)
	assert.Equal(t, -120.3486, box.MaxLng)
	assert.InDelta(t, 0.195, box.Width, 1e-9)
	assert.InDelta(t, 0.1783, box.Height, 1e-9)
}

func TestCalculator_AspectRatio(t *testing.T) {
	calc := NewCalculator()

	// Square in degrees at the equator should be square in meters too
	square := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 0},
	}
	ratio := calc.AspectRatio(square)
	assert.InDelta(t, 1.0, ratio, 0.01)

	// Degenerate cases
	assert.Zero(t, calc.AspectRatio(nil))
	flat := Ring{
		{Latitude: 10, Longitude: 0},
		{Latitude: 10, Longitude: 1},
		{Latitude: 10, Longitude: 2},
	}
	assert.Zero(t, calc.AspectRatio(flat), "Zero-height box should yield 0")
}

func TestCalculator_Measure(t *testing.T) {
	calc := NewCalculator()

	ring := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 0},
	}

	m := calc.Measure(ring)
	assert.InEpsilon(t, calc.Area(ring), m.AreaKm2, 1e-9)
	assert.InEpsilon(t, calc.Perimeter(ring), m.PerimeterKm, 1e-9)
	require.NotNil(t, m.Centroid)
	require.NotNil(t, m.BoundingBox)
	assert.InDelta(t, 1.0, m.AspectRatio, 0.01)
}

func TestRing_Signature(t *testing.T) {
	a := Ring{{Latitude: 38.06750000001, Longitude: -120.5436}}
	b := Ring{{Latitude: 38.06750000002, Longitude: -120.5436}}
	c := Ring{{Latitude: 38.06760000000, Longitude: -120.5436}}

	assert.Equal(t, a.Signature(), b.Signature(), "Differences below 6 decimals share a signature")
	assert.NotEqual(t, a.Signature(), c.Signature())
}

func TestFormatArea(t *testing.T) {
	assert.Equal(t, "5000 m²", FormatArea(0.005))
	assert.Equal(t, "25.00 ha", FormatArea(0.25))
	assert.Equal(t, "12.50 km²", FormatArea(12.5))
}

func TestFormatPerimeter(t *testing.T) {
	assert.Equal(t, "400 m", FormatPerimeter(0.4))
	assert.Equal(t, "2.40 km", FormatPerimeter(2.4))
}
