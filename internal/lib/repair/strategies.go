package repair

import (
	"math"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// swapAxes returns a copy of the ring with latitude and longitude exchanged
// for every vertex.
func swapAxes(ring geometry.Ring) geometry.Ring {
	out := make(geometry.Ring, len(ring))
	for i, v := range ring {
		out[i] = geometry.Point{Latitude: v.Longitude, Longitude: v.Latitude}
	}
	return out
}

// applyScaleLadder divides every coordinate by each scale in turn,
// optionally swapping axes after scaling, and accepts the first scale
// whose first vertex is plausible. Results where both axes land within
// a degree of the origin are rejected: that near-Null-Island band is the
// usual tell of an over-divided projected coordinate.
func applyScaleLadder(ring geometry.Ring, scales []float64, swap bool) (geometry.Ring, bool) {
	for _, scale := range scales {
		first := geometry.Point{
			Latitude:  ring[0].Latitude / scale,
			Longitude: ring[0].Longitude / scale,
		}
		if swap {
			first = geometry.Point{Latitude: first.Longitude, Longitude: first.Latitude}
		}
		if !plausible(first) || nearOrigin(first) {
			continue
		}

		out := make(geometry.Ring, len(ring))
		for i, v := range ring {
			lat, lng := v.Latitude/scale, v.Longitude/scale
			if swap {
				lat, lng = lng, lat
			}
			out[i] = geometry.Point{Latitude: lat, Longitude: lng}
		}
		return out, true
	}
	return nil, false
}

// applyOffsetLadder subtracts each offset from both axes and accepts the
// first offset whose first vertex is plausible.
func applyOffsetLadder(ring geometry.Ring, offsets []float64) (geometry.Ring, bool) {
	for _, offset := range offsets {
		first := geometry.Point{
			Latitude:  ring[0].Latitude - offset,
			Longitude: ring[0].Longitude - offset,
		}
		if !plausible(first) {
			continue
		}

		out := make(geometry.Ring, len(ring))
		for i, v := range ring {
			out[i] = geometry.Point{
				Latitude:  v.Latitude - offset,
				Longitude: v.Longitude - offset,
			}
		}
		return out, true
	}
	return nil, false
}

// applyUTMZone inverts the ring as UTM easting/northing in the given zone.
// Projected uploads carry (easting, northing) in the (lat, lng) slots.
func applyUTMZone(ring geometry.Ring, zone UTMZone) (geometry.Ring, bool) {
	lat, lng := tmInverse(ring[0].Latitude, ring[0].Longitude, tmParams{
		a:               wgs84SemiMajor,
		e2:              wgs84EccentricitySq,
		k0:              utmScaleFactor,
		centralMeridian: zone.CentralMeridian,
		falseEasting:    utmFalseEasting,
	})
	if !plausible(geometry.Point{Latitude: lat, Longitude: lng}) {
		return nil, false
	}

	out := make(geometry.Ring, len(ring))
	for i, v := range ring {
		vLat, vLng := tmInverse(v.Latitude, v.Longitude, tmParams{
			a:               wgs84SemiMajor,
			e2:              wgs84EccentricitySq,
			k0:              utmScaleFactor,
			centralMeridian: zone.CentralMeridian,
			falseEasting:    utmFalseEasting,
		})
		out[i] = geometry.Point{Latitude: vLat, Longitude: vLng}
	}
	return out, true
}

// applyRegionalDatum inverts the ring through the configured local datum.
// Only attempted when the raw easting/northing fall inside the datum's
// gate rectangle.
func (c *Checker) applyRegionalDatum(ring geometry.Ring) (geometry.Ring, bool) {
	d := c.opts.Datum
	easting, northing := ring[0].Latitude, ring[0].Longitude
	if easting < d.MinEasting || easting > d.MaxEasting ||
		northing < d.MinNorthing || northing > d.MaxNorthing {
		return nil, false
	}

	params := tmParams{
		a:               d.SemiMajorAxis,
		e2:              d.EccentricitySq,
		k0:              d.ScaleFactor,
		centralMeridian: d.CentralMeridian,
		falseEasting:    d.FalseEasting,
		falseNorthing:   d.FalseNorthing,
	}

	lat, lng := tmInverse(easting, northing, params)
	lat += d.LatShift
	lng += d.LngShift
	if !plausible(geometry.Point{Latitude: lat, Longitude: lng}) {
		return nil, false
	}

	out := make(geometry.Ring, len(ring))
	for i, v := range ring {
		vLat, vLng := tmInverse(v.Latitude, v.Longitude, params)
		out[i] = geometry.Point{Latitude: vLat + d.LatShift, Longitude: vLng + d.LngShift}
	}
	return out, true
}

// nearOrigin reports whether a vertex sits in the degenerate band around
// (0,0) that real data almost never occupies.
func nearOrigin(p geometry.Point) bool {
	return math.Abs(p.Latitude) < 1 && math.Abs(p.Longitude) < 1
}
