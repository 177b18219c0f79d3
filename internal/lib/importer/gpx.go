package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// DecodeGPX collects every <trkpt>, <wpt> and <rtept> element's lat/lon
// attributes in document order. A token walk keeps the order across the
// three element kinds, which struct unmarshalling would lose.
func DecodeGPX(text string) (*GeoShape, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	var points geometry.Ring

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse GPX: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "trkpt", "wpt", "rtept":
		default:
			continue
		}

		if p, ok := gpxPoint(start); ok {
			points = append(points, p)
		}
	}

	if len(points) == 0 {
		return nil, ErrNoGeometry
	}
	return shapeFromPoints(points), nil
}

// gpxPoint reads the lat/lon attributes of a GPX point element
func gpxPoint(start xml.StartElement) (geometry.Point, bool) {
	var lat, lng float64
	var haveLat, haveLng bool

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "lat":
			if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
				lat, haveLat = v, true
			}
		case "lon":
			if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
				lng, haveLng = v, true
			}
		}
	}
	if !haveLat || !haveLng {
		return geometry.Point{}, false
	}
	return geometry.Point{Latitude: lat, Longitude: lng}, true
}
