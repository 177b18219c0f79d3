// Package importer turns raw uploaded file text into rings. Decoders only
// validate structure; coordinate plausibility is the repair package's job.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// ShapeType tags the kind of geometry a decoder produced
type ShapeType string

const (
	ShapePolygon    ShapeType = "Polygon"
	ShapeLineString ShapeType = "LineString"
)

// GeoShape is the tagged decoder result: a Polygon carries one or more
// rings, a LineString carries an open point sequence. Fewer than 3 points
// always decodes as a LineString; the caller decides whether to reject it
// for area computation.
type GeoShape struct {
	Type   ShapeType
	Rings  []geometry.Ring
	Points geometry.Ring
}

// ErrNoGeometry is returned when a well-formed file contains nothing usable
var ErrNoGeometry = errors.New("no usable geometry found")

// shapeFromPoints classifies a point sequence as Polygon or LineString
func shapeFromPoints(points geometry.Ring) *GeoShape {
	if len(points) >= 3 {
		return &GeoShape{Type: ShapePolygon, Rings: []geometry.Ring{points}}
	}
	return &GeoShape{Type: ShapeLineString, Points: points}
}

// PrimaryRing returns the ring a caller should measure, if the shape has one
func (s *GeoShape) PrimaryRing() (geometry.Ring, bool) {
	if s.Type == ShapePolygon && len(s.Rings) > 0 {
		return s.Rings[0], true
	}
	return nil, false
}

// Decode dispatches to the right decoder based on file extension, falling
// back to content sniffing for unknown extensions.
func Decode(filename, text string) (*GeoShape, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".kml":
		return DecodeKML(text)
	case ".gpx":
		return DecodeGPX(text)
	case ".json", ".geojson":
		return DecodeGeoJSON(text)
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "<"):
		if strings.Contains(trimmed, "<gpx") {
			return DecodeGPX(text)
		}
		return DecodeKML(text)
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return DecodeGeoJSON(text)
	case trimmed != "":
		return DecodePolyline(trimmed)
	}
	return nil, fmt.Errorf("unrecognized input format for %q", filename)
}

// dropClosingVertex removes a repeated last vertex; rings do not repeat
// their first vertex internally.
func dropClosingVertex(points geometry.Ring) geometry.Ring {
	if len(points) > 1 && points[0] == points[len(points)-1] {
		return points[:len(points)-1]
	}
	return points
}
