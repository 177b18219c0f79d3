package geometry

import "math"

const (
	// Earth's radius in meters
	earthRadiusMeters = 6371000.0
	// Meters per degree of latitude (and of longitude at the equator)
	metersPerDegree = 111320.0
)

// Calculator computes scalar geometry over a ring. All methods are total
// over well-formed input: degenerate rings yield zero values, never errors.
type Calculator interface {
	// Area in km², planar Shoelace with a flat-earth local scale.
	// Returns 0 for fewer than 3 vertices.
	Area(ring Ring) float64

	// Perimeter in km, Haversine over consecutive pairs including the
	// closing edge. Returns 0 for fewer than 2 vertices.
	Perimeter(ring Ring) float64

	// Centroid is the arithmetic mean of the vertices (not area-weighted).
	// Returns nil for an empty ring.
	Centroid(ring Ring) *Point

	// BoundingBox is a min/max scan. Returns nil for an empty ring.
	BoundingBox(ring Ring) *BoundingBox

	// AspectRatio is bounding-box width/height with both sides converted
	// to meters. Returns 0 for a nil box or zero height.
	AspectRatio(ring Ring) float64

	// Measure assembles the full measurement for a ring
	Measure(ring Ring) Measurement
}

// calculator implements the Calculator interface
type calculator struct{}

// NewCalculator creates a new Calculator implementation
func NewCalculator() Calculator {
	return &calculator{}
}

// Area calculates polygon area using the Shoelace formula over (lng,lat)
// treated as planar coordinates, then converts degree² to km² using the
// average latitude of the vertices. The approximation is valid for regions
// of modest extent (tens of km); there is no ellipsoidal correction and no
// handling of antimeridian crossing.
func (c *calculator) Area(ring Ring) float64 {
	if len(ring) < 3 {
		return 0
	}

	sum := 0.0
	avgLat := 0.0
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		sum += (ring[j].Longitude + ring[i].Longitude) * (ring[j].Latitude - ring[i].Latitude)
		avgLat += ring[i].Latitude
		j = i
	}
	areaDeg2 := math.Abs(sum) / 2
	avgLat /= float64(len(ring))

	metersPerDegLat := metersPerDegree
	metersPerDegLng := metersPerDegree * math.Cos(avgLat*math.Pi/180)

	return areaDeg2 * (metersPerDegLat * metersPerDegLng) / 1e6
}

// Perimeter sums great-circle distances between consecutive vertices,
// wrapping from the last vertex back to the first.
func (c *calculator) Perimeter(ring Ring) float64 {
	if len(ring) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(ring); i++ {
		next := ring[(i+1)%len(ring)]
		total += haversineMeters(ring[i], next)
	}
	return total / 1000
}

// Centroid returns the vertex centroid of the ring
func (c *calculator) Centroid(ring Ring) *Point {
	if len(ring) == 0 {
		return nil
	}

	var latSum, lngSum float64
	for _, v := range ring {
		latSum += v.Latitude
		lngSum += v.Longitude
	}
	n := float64(len(ring))
	return &Point{Latitude: latSum / n, Longitude: lngSum / n}
}

// BoundingBox returns the min/max extent of the ring in degrees
func (c *calculator) BoundingBox(ring Ring) *BoundingBox {
	if len(ring) == 0 {
		return nil
	}

	box := &BoundingBox{
		MinLat: ring[0].Latitude,
		MaxLat: ring[0].Latitude,
		MinLng: ring[0].Longitude,
		MaxLng: ring[0].Longitude,
	}
	for _, v := range ring[1:] {
		box.MinLat = math.Min(box.MinLat, v.Latitude)
		box.MaxLat = math.Max(box.MaxLat, v.Latitude)
		box.MinLng = math.Min(box.MinLng, v.Longitude)
		box.MaxLng = math.Max(box.MaxLng, v.Longitude)
	}
	box.Width = box.MaxLng - box.MinLng
	box.Height = box.MaxLat - box.MinLat
	return box
}

// AspectRatio returns width/height of the bounding box with the width
// scaled by cos(average latitude) so both sides are in meters.
func (c *calculator) AspectRatio(ring Ring) float64 {
	box := c.BoundingBox(ring)
	if box == nil || box.Height == 0 {
		return 0
	}

	avgLat := (box.MinLat + box.MaxLat) / 2
	widthMeters := box.Width * metersPerDegree * math.Cos(avgLat*math.Pi/180)
	heightMeters := box.Height * metersPerDegree

	return widthMeters / heightMeters
}

// Measure computes the full measurement for a ring
func (c *calculator) Measure(ring Ring) Measurement {
	return Measurement{
		AreaKm2:     c.Area(ring),
		PerimeterKm: c.Perimeter(ring),
		Centroid:    c.Centroid(ring),
		BoundingBox: c.BoundingBox(ring),
		AspectRatio: c.AspectRatio(ring),
	}
}

// haversineMeters calculates great-circle distance between two points
func haversineMeters(p1, p2 Point) float64 {
	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	deltaLat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	deltaLng := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
