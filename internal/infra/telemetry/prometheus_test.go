package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pogomcp/internal/domain"
)

func TestNewPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	assert.NotNil(t, m)
	assert.NotNil(t, m.snapshotLoads)
	assert.NotNil(t, m.loadDuration)
	assert.NotNil(t, m.staleServed)
	assert.NotNil(t, m.invalidations)
	assert.NotNil(t, m.snapshotItems)
}

func TestPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveSnapshotLoad(domain.CategoryEvents, domain.LoadOutcomeSuccess, 10*time.Millisecond)
	m.ObserveSnapshotLoad(domain.CategoryRaids, domain.LoadOutcomeFailure, time.Millisecond)
	m.ObserveStaleServed(domain.CategoryRaids)
	m.ObserveInvalidation(domain.CategoryEvents)
	m.SetSnapshotItems(domain.CategoryEvents, 12)

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, mf := range metrics {
		names = append(names, mf.GetName())
	}

	assert.Contains(t, names, "pogomcp_snapshot_loads_total")
	assert.Contains(t, names, "pogomcp_snapshot_load_duration_seconds")
	assert.Contains(t, names, "pogomcp_stale_snapshots_served_total")
	assert.Contains(t, names, "pogomcp_cache_invalidations_total")
	assert.Contains(t, names, "pogomcp_snapshot_items")
}
