// Package services wires the measurement core together: geometry math
// behind the bounded caches, the coordinate sanity checker, and the file
// decoders.
package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/landdraw/landdraw/server/internal/cache"
	"github.com/landdraw/landdraw/server/internal/config"
	"github.com/landdraw/landdraw/server/internal/lib/geometry"
	"github.com/landdraw/landdraw/server/internal/lib/importer"
	"github.com/landdraw/landdraw/server/internal/lib/repair"
	"github.com/landdraw/landdraw/server/internal/lib/request"
	"github.com/landdraw/landdraw/server/internal/observability"
)

// MeasureService computes measurements for rings, repairing implausible
// coordinates and caching scalar results per ring signature. All methods
// run synchronously to completion; the caches hold the only shared state.
type MeasureService struct {
	cfg     *config.Config
	logger  *zap.SugaredLogger
	metrics *observability.Collector

	calc    geometry.Calculator
	checker *repair.Checker

	areaCache      *cache.ScalarCache
	perimeterCache *cache.ScalarCache
}

// NewMeasureService creates the measurement service. logger and metrics
// may be nil.
func NewMeasureService(cfg *config.Config, logger *zap.SugaredLogger, metrics *observability.Collector) *MeasureService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &MeasureService{
		cfg:            cfg,
		logger:         logger,
		metrics:        metrics,
		calc:           geometry.NewCalculator(),
		checker:        repair.NewChecker(cfg.RepairOptions(), logger),
		areaCache:      cache.NewScalarCache(cfg.Cache.AreaCapacity),
		perimeterCache: cache.NewScalarCache(cfg.Cache.PerimeterCapacity),
	}
}

// Measure computes the full measurement for a ring. Area and perimeter go
// through the signature-keyed caches so redrawing the same ring during
// interactive dragging stays cheap.
func (s *MeasureService) Measure(ring geometry.Ring) geometry.Measurement {
	if s.metrics != nil {
		s.metrics.MeasureTotal.Inc()
	}

	signature := ring.Signature()
	area := s.cached(s.areaCache, "area", signature, func() float64 {
		return s.calc.Area(ring)
	})
	perimeter := s.cached(s.perimeterCache, "perimeter", signature, func() float64 {
		return s.calc.Perimeter(ring)
	})

	return geometry.Measurement{
		AreaKm2:     area,
		PerimeterKm: perimeter,
		Centroid:    s.calc.Centroid(ring),
		BoundingBox: s.calc.BoundingBox(ring),
		AspectRatio: s.calc.AspectRatio(ring),
	}
}

// cached wraps a cache access with hit/miss metrics
func (s *MeasureService) cached(c *cache.ScalarCache, name, signature string, compute func() float64) float64 {
	before := c.Stats().Misses
	value := c.GetOrCompute(signature, compute)
	if s.metrics != nil {
		result := "hit"
		if c.Stats().Misses > before {
			result = "miss"
		}
		s.metrics.CacheAccesses.WithLabelValues(name, result).Inc()
	}
	return value
}

// CheckAndFix runs the coordinate sanity checker over a ring that may
// originate from an untrusted upload. viewCenter, when non-nil, enables
// the far-from-view warning.
func (s *MeasureService) CheckAndFix(ring geometry.Ring, viewCenter *geometry.Point) (repair.Result, error) {
	res, err := s.checker.CheckAndFix(ring, viewCenter)
	if s.metrics != nil {
		switch {
		case err != nil:
			s.metrics.RepairOutcomes.WithLabelValues("failed").Inc()
		case res.Corrected:
			s.metrics.RepairOutcomes.WithLabelValues(res.Method).Inc()
		default:
			s.metrics.RepairOutcomes.WithLabelValues("plausible").Inc()
		}
	}
	if err != nil {
		return repair.Result{}, err
	}
	if res.ViewWarning {
		s.logger.Warnw("ring is far from the current view center",
			"method", res.Method, "corrected", res.Corrected)
	}
	return res, nil
}

// RelocateToFallback applies the last-resort shape-preserving relocation.
// The result intentionally discards true location; callers must surface a
// strong warning.
func (s *MeasureService) RelocateToFallback(ring geometry.Ring) (geometry.Ring, error) {
	relocated, err := s.checker.RelocateToFallback(ring)
	if err != nil {
		return nil, err
	}
	s.logger.Warnw("relocated unrecoverable ring to fallback anchor",
		"vertices", len(relocated))
	if s.metrics != nil {
		s.metrics.RepairOutcomes.WithLabelValues("relocate").Inc()
	}
	return relocated, nil
}

// DecodeFile decodes uploaded file text, sanity-checks the resulting ring,
// and returns the repaired shape. A LineString decodes successfully but is
// not checked: it carries no measurable ring.
func (s *MeasureService) DecodeFile(filename, text string, viewCenter *geometry.Point) (*importer.GeoShape, *repair.Result, error) {
	shape, err := importer.Decode(filename, text)
	if err != nil {
		if s.metrics != nil {
			s.metrics.DecodeTotal.WithLabelValues("error").Inc()
		}
		return nil, nil, fmt.Errorf("failed to decode %q: %w", filename, err)
	}
	if s.metrics != nil {
		s.metrics.DecodeTotal.WithLabelValues("ok").Inc()
	}

	ring, ok := shape.PrimaryRing()
	if !ok {
		return shape, nil, nil
	}

	res, err := s.CheckAndFix(ring, viewCenter)
	if err != nil {
		return shape, nil, fmt.Errorf("decoded ring failed the sanity check: %w", err)
	}
	if res.Corrected {
		shape.Rings[0] = res.Ring
	}
	return shape, &res, nil
}

// BuildRequest assembles the submission payload for a ring, measuring it
// through the caches.
func (s *MeasureService) BuildRequest(ring geometry.Ring) (request.AreaRequest, error) {
	return request.New(ring, s.Measure(ring))
}

// CacheStats exposes the cache counters for diagnostics and tests
func (s *MeasureService) CacheStats() (area, perimeter cache.Stats) {
	return s.areaCache.Stats(), s.perimeterCache.Stats()
}
