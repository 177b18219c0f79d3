// Package repair decides whether a ring is plausible WGS84 and, when it is
// not, attempts automatic recovery. Uploaded geographic files are a common
// source of silent unit and axis errors (lat/lng swap, UTM never converted,
// wrong datum); the checker prefers "looks plausible" heuristics over
// rejecting the file outright, but always reports which heuristic fired and
// never fabricates a result silently.
package repair

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// ErrImplausible is returned when every recovery heuristic has failed.
// Callers must surface this as "cannot display", never as a wrong answer.
var ErrImplausible = errors.New("coordinates are implausible and no repair heuristic succeeded")

// ErrEmptyRing is returned when there is nothing to check
var ErrEmptyRing = errors.New("ring has no vertices")

// Result is the outcome of a successful check. Method is empty when the
// input was accepted unchanged, otherwise it names the heuristic that fired.
type Result struct {
	Ring        geometry.Ring
	Corrected   bool
	Method      string
	ViewWarning bool
}

// Strategy is one candidate transform in the recovery chain. Apply returns
// the transformed ring and whether the transform produced a plausible result.
type Strategy struct {
	Name  string
	Apply func(ring geometry.Ring) (geometry.Ring, bool)
}

// Checker runs the plausibility check and the recovery chain
type Checker struct {
	opts   Options
	calc   geometry.Calculator
	logger *zap.SugaredLogger
}

// NewChecker creates a Checker. A nil logger disables logging.
func NewChecker(opts Options, logger *zap.SugaredLogger) *Checker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Checker{
		opts:   opts,
		calc:   geometry.NewCalculator(),
		logger: logger,
	}
}

// CheckAndFix validates that ring is plausible WGS84, attempting the
// recovery chain when it is not. Only the first vertex is inspected for
// plausibility: a ring with a valid first vertex and out-of-range later
// vertices passes undetected. That limitation is deliberate and mirrors
// the behavior uploads have always had.
//
// viewCenter, when non-nil, enables the non-blocking far-from-view warning;
// the warning never alters the ring.
func (c *Checker) CheckAndFix(ring geometry.Ring, viewCenter *geometry.Point) (Result, error) {
	if len(ring) == 0 {
		return Result{}, ErrEmptyRing
	}

	if plausible(ring[0]) {
		res := Result{Ring: ring, Corrected: false}
		res.ViewWarning = c.FarFromView(ring, viewCenter)
		return res, nil
	}

	// Axis swap is the cheapest and most common fix
	if swapped := swapAxes(ring); plausible(swapped[0]) {
		c.logger.Infow("auto-corrected coordinates", "method", "swap")
		res := Result{Ring: swapped, Corrected: true, Method: "swap"}
		res.ViewWarning = c.FarFromView(swapped, viewCenter)
		return res, nil
	}

	// Anything that is neither valid lat/lng nor an obviously projected
	// magnitude cannot be recovered without guessing.
	if !c.largeMagnitude(ring[0]) {
		return Result{}, ErrImplausible
	}

	for _, s := range c.strategies() {
		fixed, ok := s.Apply(ring)
		if !ok {
			continue
		}
		c.logger.Infow("auto-corrected coordinates", "method", s.Name)
		res := Result{Ring: fixed, Corrected: true, Method: s.Name}
		res.ViewWarning = c.FarFromView(fixed, viewCenter)
		return res, nil
	}

	return Result{}, ErrImplausible
}

// FarFromView reports whether the ring's centroid lies more than the
// configured angular threshold from the current view center. Non-blocking:
// a true result is a warning, not a rejection.
func (c *Checker) FarFromView(ring geometry.Ring, viewCenter *geometry.Point) bool {
	if viewCenter == nil {
		return false
	}
	centroid := c.calc.Centroid(ring)
	if centroid == nil {
		return false
	}
	dLat := centroid.Latitude - viewCenter.Latitude
	dLng := centroid.Longitude - viewCenter.Longitude
	return math.Sqrt(dLat*dLat+dLng*dLng) > c.opts.ViewWarnDegrees
}

// strategies builds the ordered recovery chain for large-magnitude input.
// The rectangle-gated regional datum inverse runs first: its gate is a far
// stronger prior than the generic scale ladder, which would otherwise
// shadow it for every coordinate inside its own rectangle.
func (c *Checker) strategies() []Strategy {
	chain := []Strategy{
		{Name: c.opts.Datum.Name, Apply: c.applyRegionalDatum},
		{Name: "scale", Apply: func(r geometry.Ring) (geometry.Ring, bool) {
			return applyScaleLadder(r, c.opts.ScaleLadder, false)
		}},
		{Name: "scale-swap", Apply: func(r geometry.Ring) (geometry.Ring, bool) {
			return applyScaleLadder(r, c.opts.ScaleLadder, true)
		}},
		{Name: "offset", Apply: func(r geometry.Ring) (geometry.Ring, bool) {
			return applyOffsetLadder(r, c.opts.OffsetLadder)
		}},
	}
	for _, zone := range c.opts.UTMZones {
		z := zone
		chain = append(chain, Strategy{
			Name: fmt.Sprintf("utm-zone-%d", z.Zone),
			Apply: func(r geometry.Ring) (geometry.Ring, bool) {
				return applyUTMZone(r, z)
			},
		})
	}
	chain = append(chain,
		Strategy{Name: "rescue", Apply: func(r geometry.Ring) (geometry.Ring, bool) {
			if fixed, ok := applyScaleLadder(r, c.opts.RescueLadder, false); ok {
				return fixed, true
			}
			return applyScaleLadder(r, c.opts.RescueLadder, true)
		}},
	)
	return chain
}

// largeMagnitude reports whether a vertex looks like projected meters
func (c *Checker) largeMagnitude(p geometry.Point) bool {
	return math.Abs(p.Latitude) > c.opts.LargeMagnitude ||
		math.Abs(p.Longitude) > c.opts.LargeMagnitude
}

// plausible reports whether a vertex is within WGS84 lat/lng bounds
func plausible(p geometry.Point) bool {
	return math.Abs(p.Latitude) <= 90 && math.Abs(p.Longitude) <= 180
}
