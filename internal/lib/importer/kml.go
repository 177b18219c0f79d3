package importer

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// KML coordinate text is whitespace-separated "lng,lat[,alt]" tuples:
// longitude precedes latitude and has to be reordered.

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

type kmlPolygon struct {
	OuterBoundary kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlLineString struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Polygon    *kmlPolygon    `xml:"Polygon"`
	LineString *kmlLineString `xml:"LineString"`
}

// kmlContainer covers <kml>, <Document> and <Folder> nesting
type kmlContainer struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Documents  []kmlContainer `xml:"Document"`
	Folders    []kmlContainer `xml:"Folder"`
}

// DecodeKML extracts the first Placemark geometry from KML text, preferring
// a Polygon's coordinates and falling back to a LineString. Malformed XML
// is a parse error.
func DecodeKML(text string) (*GeoShape, error) {
	var root kmlContainer
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("failed to parse KML: %w", err)
	}

	for _, pm := range collectPlacemarks(root) {
		var coordText string
		if pm.Polygon != nil {
			coordText = pm.Polygon.OuterBoundary.LinearRing.Coordinates
		} else if pm.LineString != nil {
			coordText = pm.LineString.Coordinates
		}
		points := parseKMLCoordinates(coordText)
		if len(points) == 0 {
			continue
		}
		return shapeFromPoints(dropClosingVertex(points)), nil
	}

	return nil, ErrNoGeometry
}

// collectPlacemarks flattens arbitrarily nested Document/Folder containers
func collectPlacemarks(c kmlContainer) []kmlPlacemark {
	placemarks := append([]kmlPlacemark(nil), c.Placemarks...)
	for _, d := range c.Documents {
		placemarks = append(placemarks, collectPlacemarks(d)...)
	}
	for _, f := range c.Folders {
		placemarks = append(placemarks, collectPlacemarks(f)...)
	}
	return placemarks
}

// parseKMLCoordinates parses "lng,lat[,alt]" tuples, skipping malformed ones
func parseKMLCoordinates(text string) geometry.Ring {
	var points geometry.Ring
	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lng, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, geometry.Point{Latitude: lat, Longitude: lng})
	}
	return points
}
