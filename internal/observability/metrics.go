// Package observability bundles the Prometheus metrics the measurement
// service emits.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles measurement metrics and registers them against an
// injectable registerer.
type Collector struct {
	MeasureTotal   prometheus.Counter
	CacheAccesses  *prometheus.CounterVec
	RepairOutcomes *prometheus.CounterVec
	DecodeTotal    *prometheus.CounterVec
}

// NewCollector registers the measurement metrics against reg, defaulting
// to the global Prometheus registry when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	measureTotal, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "measure_requests_total",
		Help: "Total number of ring measurements requested.",
	}))
	if err != nil {
		return nil, err
	}

	cacheAccesses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "measure_cache_accesses_total",
		Help: "Measurement cache accesses, labeled by cache and result.",
	}, []string{"cache", "result"})
	cacheAccesses, err = registerCounterVec(reg, cacheAccesses)
	if err != nil {
		return nil, err
	}

	repairOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coordinate_repairs_total",
		Help: "Coordinate sanity-check outcomes, labeled by method.",
	}, []string{"method"})
	repairOutcomes, err = registerCounterVec(reg, repairOutcomes)
	if err != nil {
		return nil, err
	}

	decodeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "file_decodes_total",
		Help: "Uploaded file decodes, labeled by result.",
	}, []string{"result"})
	decodeTotal, err = registerCounterVec(reg, decodeTotal)
	if err != nil {
		return nil, err
	}

	return &Collector{
		MeasureTotal:   measureTotal,
		CacheAccesses:  cacheAccesses,
		RepairOutcomes: repairOutcomes,
		DecodeTotal:    decodeTotal,
	}, nil
}

// registerCounter registers c, reusing an existing collector when the
// metric was already registered.
func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// registerCounterVec registers v, reusing an existing collector when the
// metric was already registered.
func registerCounterVec(reg prometheus.Registerer, v *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(v); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return v, nil
}
