package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// DecodeGeoJSON extracts a shape from GeoJSON text. Uploads arrive as a
// Polygon, MultiPolygon, LineString, Feature, FeatureCollection, or a raw
// array of [lat,lng] pairs. Each is handled as an explicit tagged union;
// unknown type tags are rejected rather than falling through silently.
func DecodeGeoJSON(text string) (*GeoShape, error) {
	trimmed := strings.TrimSpace(text)

	// Raw coordinate arrays carry no type tag at all
	if strings.HasPrefix(trimmed, "[") {
		return decodeRawArray(trimmed)
	}

	var tagged struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(trimmed), &tagged); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	switch tagged.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection([]byte(trimmed))
		if err != nil {
			return nil, fmt.Errorf("failed to parse FeatureCollection: %w", err)
		}
		for _, feature := range fc.Features {
			if shape, err := shapeFromOrb(feature.Geometry); err == nil {
				return shape, nil
			}
		}
		return nil, ErrNoGeometry

	case "Feature":
		feature, err := geojson.UnmarshalFeature([]byte(trimmed))
		if err != nil {
			return nil, fmt.Errorf("failed to parse Feature: %w", err)
		}
		return shapeFromOrb(feature.Geometry)

	case "Polygon", "MultiPolygon", "LineString", "MultiLineString":
		geom, err := geojson.UnmarshalGeometry([]byte(trimmed))
		if err != nil {
			return nil, fmt.Errorf("failed to parse geometry: %w", err)
		}
		return shapeFromOrb(geom.Geometry())

	default:
		return nil, fmt.Errorf("unsupported GeoJSON type %q", tagged.Type)
	}
}

// shapeFromOrb converts an orb geometry to the tagged GeoShape. orb points
// are (lng,lat) and have to be reordered.
func shapeFromOrb(geom orb.Geometry) (*GeoShape, error) {
	switch g := geom.(type) {
	case orb.Polygon:
		rings := make([]geometry.Ring, 0, len(g))
		for _, ring := range g {
			rings = append(rings, dropClosingVertex(ringFromOrb(ring)))
		}
		if len(rings) == 0 || len(rings[0]) < 3 {
			return nil, ErrNoGeometry
		}
		return &GeoShape{Type: ShapePolygon, Rings: rings}, nil

	case orb.MultiPolygon:
		if len(g) == 0 {
			return nil, ErrNoGeometry
		}
		return shapeFromOrb(g[0])

	case orb.LineString:
		if len(g) == 0 {
			return nil, ErrNoGeometry
		}
		return shapeFromPoints(ringFromOrb(orb.Ring(g))), nil

	case orb.MultiLineString:
		if len(g) == 0 {
			return nil, ErrNoGeometry
		}
		return shapeFromOrb(g[0])

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geom.GeoJSONType())
	}
}

// ringFromOrb reorders orb's (lng,lat) points into Point{lat,lng}
func ringFromOrb(ring orb.Ring) geometry.Ring {
	out := make(geometry.Ring, 0, len(ring))
	for _, p := range ring {
		out = append(out, geometry.Point{Latitude: p.Lat(), Longitude: p.Lon()})
	}
	return out
}

// decodeRawArray handles bare [[lat,lng], ...] arrays, which drawing tools
// export without any GeoJSON wrapper. Pair order here is [lat,lng], not
// GeoJSON's [lng,lat].
func decodeRawArray(text string) (*GeoShape, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(text), &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse coordinate array: %w", err)
	}

	var points geometry.Ring
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		points = append(points, geometry.Point{Latitude: pair[0], Longitude: pair[1]})
	}
	if len(points) == 0 {
		return nil, ErrNoGeometry
	}
	return shapeFromPoints(dropClosingVertex(points)), nil
}
