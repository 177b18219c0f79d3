package repair

import "github.com/landdraw/landdraw/server/internal/lib/geometry"

// UTMZone is a candidate zone for the UTM inverse heuristic
type UTMZone struct {
	Zone            int
	CentralMeridian float64
	Region          string
}

// RegionalDatum parameterizes a local Transverse Mercator datum inverse,
// gated on a raw easting/northing rectangle. LatShift/LngShift are small
// empirical offsets applied after inversion to approximate the datum's
// offset from WGS84.
type RegionalDatum struct {
	Name            string
	SemiMajorAxis   float64
	EccentricitySq  float64
	CentralMeridian float64
	ScaleFactor     float64
	FalseEasting    float64
	FalseNorthing   float64
	MinEasting      float64
	MaxEasting      float64
	MinNorthing     float64
	MaxNorthing     float64
	LatShift        float64
	LngShift        float64
}

// Options holds the tunables of the recovery chain
type Options struct {
	// Magnitude above which a coordinate is treated as projected meters
	LargeMagnitude float64
	// Descending powers of ten tried by the scale and scale+swap transforms
	ScaleLadder []float64
	// Descending constants tried by the offset transform
	OffsetLadder []float64
	// Shorter scale list for the final rescue pass
	RescueLadder []float64
	// Candidate UTM zones, tried in order
	UTMZones []UTMZone
	// Rectangle-gated regional datum inverse
	Datum RegionalDatum
	// Angular distance from the view center beyond which a warning is raised
	ViewWarnDegrees float64
	// Anchor and span for the last-resort shape-preserving relocation
	FallbackAnchor      geometry.Point
	FallbackSpanDegrees float64
}

// DefaultOptions returns the stock recovery configuration: UTM zones
// covering West Africa, East Africa and the US, and a Minna-style datum
// for Nigerian survey coordinates.
func DefaultOptions() Options {
	return Options{
		LargeMagnitude: 1000,
		ScaleLadder:    []float64{1e7, 1e6, 1e5, 1e4, 1e3, 1e2, 1e1},
		OffsetLadder:   []float64{1e7, 1e6, 1e5, 1e4, 1e3},
		RescueLadder:   []float64{1e6, 1e4, 1e2},
		UTMZones: []UTMZone{
			{Zone: 31, CentralMeridian: 3, Region: "West Africa"},
			{Zone: 32, CentralMeridian: 9, Region: "West Africa"},
			{Zone: 36, CentralMeridian: 33, Region: "East Africa"},
			{Zone: 37, CentralMeridian: 39, Region: "East Africa"},
			{Zone: 10, CentralMeridian: -123, Region: "US West"},
			{Zone: 15, CentralMeridian: -93, Region: "US Central"},
			{Zone: 17, CentralMeridian: -81, Region: "US East"},
			{Zone: 18, CentralMeridian: -75, Region: "US East"},
		},
		Datum: RegionalDatum{
			Name:            "minna-datum",
			SemiMajorAxis:   6378249.145,
			EccentricitySq:  0.006722670,
			CentralMeridian: 8.5,
			ScaleFactor:     0.99975,
			FalseEasting:    670753.688,
			FalseNorthing:   0,
			MinEasting:      100000,
			MaxEasting:      900000,
			MinNorthing:     100000,
			MaxNorthing:     1200000,
			LatShift:        0.00026,
			LngShift:        -0.00091,
		},
		ViewWarnDegrees: 15,
		// Abuja; chosen so relocated shapes land somewhere recognizable
		FallbackAnchor:      geometry.Point{Latitude: 9.0765, Longitude: 7.3986},
		FallbackSpanDegrees: 10,
	}
}
