package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

const sampleKMLPolygon = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>Parcel</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>-122.4,37.7,0 -122.5,37.8,0 -122.3,37.9,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

const sampleKMLLineString = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Folder>
    <Placemark>
      <LineString>
        <coordinates>-120.5436,38.0675 -120.4561,38.1391</coordinates>
      </LineString>
    </Placemark>
  </Folder>
</kml>`

func TestDecodeKML_Polygon(t *testing.T) {
	shape, err := DecodeKML(sampleKMLPolygon)
	require.NoError(t, err)

	assert.Equal(t, ShapePolygon, shape.Type)
	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	require.Len(t, ring, 3)

	// KML is lng-first; vertices must come back in [lat,lng] order
	assert.Equal(t, geometry.Point{Latitude: 37.7, Longitude: -122.4}, ring[0])
	assert.Equal(t, geometry.Point{Latitude: 37.8, Longitude: -122.5}, ring[1])
	assert.Equal(t, geometry.Point{Latitude: 37.9, Longitude: -122.3}, ring[2])
}

func TestDecodeKML_LineStringFallback(t *testing.T) {
	shape, err := DecodeKML(sampleKMLLineString)
	require.NoError(t, err)

	assert.Equal(t, ShapeLineString, shape.Type)
	require.Len(t, shape.Points, 2)
	assert.Equal(t, geometry.Point{Latitude: 38.0675, Longitude: -120.5436}, shape.Points[0])

	_, ok := shape.PrimaryRing()
	assert.False(t, ok, "LineString has no measurable ring")
}

func TestDecodeKML_Malformed(t *testing.T) {
	_, err := DecodeKML("<kml><Placemark>")
	assert.Error(t, err)
}

func TestDecodeKML_DropsClosingVertex(t *testing.T) {
	kml := `<kml><Placemark><Polygon><outerBoundaryIs><LinearRing>
<coordinates>0,0 1,0 1,1 0,1 0,0</coordinates>
</LinearRing></outerBoundaryIs></Polygon></Placemark></kml>`

	shape, err := DecodeKML(kml)
	require.NoError(t, err)
	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	assert.Len(t, ring, 4, "Repeated closing vertex should be dropped")
}

func TestDecodeGPX(t *testing.T) {
	gpx := `<?xml version="1.0"?>
<gpx version="1.1" creator="test">
  <wpt lat="38.0675" lon="-120.5436"></wpt>
  <trk><trkseg>
    <trkpt lat="38.1391" lon="-120.4561"></trkpt>
    <trkpt lat="38.2458" lon="-120.3486"></trkpt>
  </trkseg></trk>
  <rte><rtept lat="38.5347" lon="-119.8075"></rtept></rte>
</gpx>`

	shape, err := DecodeGPX(gpx)
	require.NoError(t, err)

	assert.Equal(t, ShapePolygon, shape.Type)
	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	require.Len(t, ring, 4)

	// Document order across wpt/trkpt/rtept
	assert.Equal(t, geometry.Point{Latitude: 38.0675, Longitude: -120.5436}, ring[0])
	assert.Equal(t, geometry.Point{Latitude: 38.5347, Longitude: -119.8075}, ring[3])
}

func TestDecodeGPX_TwoPointsIsLineString(t *testing.T) {
	gpx := `<gpx><trk><trkseg>
  <trkpt lat="38.0" lon="-120.0"></trkpt>
  <trkpt lat="38.1" lon="-120.1"></trkpt>
</trkseg></trk></gpx>`

	shape, err := DecodeGPX(gpx)
	require.NoError(t, err)
	assert.Equal(t, ShapeLineString, shape.Type)
}

func TestDecodeGPX_Empty(t *testing.T) {
	_, err := DecodeGPX("<gpx></gpx>")
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestDecodeGeoJSON_FeatureCollection(t *testing.T) {
	geoJSON := `{
  "type": "FeatureCollection",
  "features": [{
    "type": "Feature",
    "properties": {},
    "geometry": {
      "type": "Polygon",
      "coordinates": [[[-122.4,37.7],[-122.5,37.8],[-122.3,37.9],[-122.4,37.7]]]
    }
  }]
}`

	shape, err := DecodeGeoJSON(geoJSON)
	require.NoError(t, err)

	assert.Equal(t, ShapePolygon, shape.Type)
	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	require.Len(t, ring, 3, "GeoJSON closing vertex should be dropped")
	assert.Equal(t, geometry.Point{Latitude: 37.7, Longitude: -122.4}, ring[0])
}

func TestDecodeGeoJSON_BareGeometry(t *testing.T) {
	geoJSON := `{"type":"LineString","coordinates":[[-120.5436,38.0675],[-120.4561,38.1391]]}`

	shape, err := DecodeGeoJSON(geoJSON)
	require.NoError(t, err)
	assert.Equal(t, ShapeLineString, shape.Type)
	assert.Equal(t, geometry.Point{Latitude: 38.0675, Longitude: -120.5436}, shape.Points[0])
}

func TestDecodeGeoJSON_RawArray(t *testing.T) {
	shape, err := DecodeGeoJSON(`[[37.7,-122.4],[37.8,-122.5],[37.9,-122.3]]`)
	require.NoError(t, err)

	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{Latitude: 37.7, Longitude: -122.4}, ring[0])
}

func TestDecodeGeoJSON_UnknownType(t *testing.T) {
	_, err := DecodeGeoJSON(`{"type":"GeometryCollection","geometries":[]}`)
	assert.Error(t, err)
}

func TestDecodePolyline(t *testing.T) {
	// Canonical example from the encoded polyline format docs
	shape, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)

	assert.Equal(t, ShapePolygon, shape.Type)
	ring, ok := shape.PrimaryRing()
	require.True(t, ok)
	require.Len(t, ring, 3)
	assert.InDelta(t, 38.5, ring[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, ring[0].Longitude, 1e-5)
	assert.InDelta(t, 43.252, ring[2].Latitude, 1e-5)
	assert.InDelta(t, -126.453, ring[2].Longitude, 1e-5)
}

func TestDecode_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		text     string
		wantType ShapeType
	}{
		{"kml by extension", "parcel.kml", sampleKMLPolygon, ShapePolygon},
		{"gpx by extension", "track.gpx", `<gpx><wpt lat="1" lon="2"/><wpt lat="2" lon="3"/><wpt lat="3" lon="4"/></gpx>`, ShapePolygon},
		{"geojson by extension", "area.geojson", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, ShapePolygon},
		{"xml sniffed as gpx", "upload", `<gpx><wpt lat="1" lon="2"/></gpx>`, ShapeLineString},
		{"xml sniffed as kml", "upload", sampleKMLPolygon, ShapePolygon},
		{"json sniffed", "upload", `[[37.7,-122.4],[37.8,-122.5],[37.9,-122.3]]`, ShapePolygon},
		{"polyline sniffed", "upload", "_p~iF~ps|U_ulLnnqC_mqNvxq`@", ShapePolygon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shape, err := Decode(tc.filename, tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, shape.Type)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode("upload", "   ")
	assert.Error(t, err)
}
