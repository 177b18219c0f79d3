package geometry

import (
	"strconv"
	"strings"
)

// Point represents a geographic coordinate
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Ring is an ordered list of vertices describing a polygon boundary.
// The first and last vertex are not required to repeat; every edge
// including the closing one is implied by vertex order.
type Ring []Point

// BoundingBox is the axis-aligned extent of a ring in degrees
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurement is the derived, immutable result of measuring a ring.
// It is recomputed whenever the ring changes, never mutated in place.
type Measurement struct {
	AreaKm2     float64      `json:"areaKm2"`
	PerimeterKm float64      `json:"perimeterKm"`
	Centroid    *Point       `json:"centroid"`
	BoundingBox *BoundingBox `json:"boundingBox"`
	AspectRatio float64      `json:"aspectRatio"`
}

// Signature returns a stable string identity for the ring: every vertex
// rounded to 6 decimal places and joined. Two rings whose floats differ
// only below that precision share a signature.
func (r Ring) Signature() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(v.Latitude, 'f', 6, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(v.Longitude, 'f', 6, 64))
	}
	return b.String()
}

// Reverse returns a copy of the ring with vertex order reversed
func (r Ring) Reverse() Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[len(r)-1-i] = v
	}
	return out
}
