package repair

import "github.com/landdraw/landdraw/server/internal/lib/geometry"

// RelocateToFallback is the last-resort, shape-preserving relocation:
// the ring is centered, uniformly scaled to fit the configured span, and
// re-anchored at the fallback location. True location is intentionally
// discarded so the shape stays visible. Callers must surface a strong
// warning and must not treat the result as geodetically meaningful; the
// checker never invokes this itself.
func (c *Checker) RelocateToFallback(ring geometry.Ring) (geometry.Ring, error) {
	box := c.calc.BoundingBox(ring)
	if box == nil {
		return nil, ErrEmptyRing
	}

	span := box.Width
	if box.Height > span {
		span = box.Height
	}
	scale := 1.0
	if span > c.opts.FallbackSpanDegrees {
		scale = c.opts.FallbackSpanDegrees / span
	}

	centerLat := (box.MinLat + box.MaxLat) / 2
	centerLng := (box.MinLng + box.MaxLng) / 2
	anchor := c.opts.FallbackAnchor

	out := make(geometry.Ring, len(ring))
	for i, v := range ring {
		out[i] = geometry.Point{
			Latitude:  anchor.Latitude + (v.Latitude-centerLat)*scale,
			Longitude: anchor.Longitude + (v.Longitude-centerLng)*scale,
		}
	}
	return out, nil
}
