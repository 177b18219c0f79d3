package repair

import "math"

// WGS84 ellipsoid and standard UTM constants
const (
	wgs84SemiMajor      = 6378137.0
	wgs84EccentricitySq = 0.00669438
	utmScaleFactor      = 0.9996
	utmFalseEasting     = 500000.0
)

// tmParams parameterizes a Transverse Mercator projection
type tmParams struct {
	a               float64
	e2              float64
	k0              float64
	centralMeridian float64
	falseEasting    float64
	falseNorthing   float64
}

// tmInverse converts projected easting/northing back to latitude/longitude
// in degrees using the standard footpoint-latitude series. Northern
// hemisphere is assumed (no 10,000,000 m northing offset).
func tmInverse(easting, northing float64, p tmParams) (lat, lng float64) {
	x := easting - p.falseEasting
	y := northing - p.falseNorthing

	e2 := p.e2
	m := y / p.k0
	mu := m / (p.a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	ep2 := e2 / (1 - e2)
	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := p.a / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := p.a * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * p.k0)

	latRad := phi1 - (n1*tanPhi1/r1)*
		(d*d/2-
			(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
			(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lngRad := (d -
		(1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	lat = latRad * 180 / math.Pi
	lng = p.centralMeridian + lngRad*180/math.Pi
	return lat, lng
}
