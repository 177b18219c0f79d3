package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()

	collector, err := NewCollector(reg)
	require.NoError(t, err)

	collector.MeasureTotal.Inc()
	collector.MeasureTotal.Inc()
	collector.CacheAccesses.WithLabelValues("area", "hit").Inc()
	collector.RepairOutcomes.WithLabelValues("swap").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.MeasureTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.CacheAccesses.WithLabelValues("area", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.RepairOutcomes.WithLabelValues("swap")))
}

func TestNewCollector_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewCollector(reg)
	require.NoError(t, err)

	second, err := NewCollector(reg)
	require.NoError(t, err, "Re-registration should reuse the existing collectors")

	first.MeasureTotal.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.MeasureTotal))
}
