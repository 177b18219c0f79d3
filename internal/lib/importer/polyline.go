package importer

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// DecodePolyline decodes a Google encoded polyline string into a shape
func DecodePolyline(encoded string) (*GeoShape, error) {
	if encoded == "" {
		return nil, ErrNoGeometry
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	points := make(geometry.Ring, 0, len(coords))
	for _, coord := range coords {
		if len(coord) < 2 {
			continue
		}
		points = append(points, geometry.Point{Latitude: coord[0], Longitude: coord[1]})
	}
	if len(points) == 0 {
		return nil, ErrNoGeometry
	}
	return shapeFromPoints(points), nil
}
