package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pogomcp/internal/domain"
)

type PrometheusMetrics struct {
	snapshotLoads *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
	staleServed   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	snapshotItems *prometheus.GaugeVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		snapshotLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogomcp_snapshot_loads_total",
				Help: "Total number of snapshot store read attempts",
			},
			[]string{"category", "outcome"},
		),
		loadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pogomcp_snapshot_load_duration_seconds",
				Help:    "Duration of snapshot store reads in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"category"},
		),
		staleServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogomcp_stale_snapshots_served_total",
				Help: "Total number of accesses served stale data after a failed reload",
			},
			[]string{"category"},
		),
		invalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogomcp_cache_invalidations_total",
				Help: "Total number of manual or watcher-driven cache invalidations",
			},
			[]string{"category"},
		),
		snapshotItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pogomcp_snapshot_items",
				Help: "Record count of the currently cached snapshot",
			},
			[]string{"category"},
		),
	}
}

func (p *PrometheusMetrics) ObserveSnapshotLoad(category domain.Category, outcome domain.LoadOutcome, duration time.Duration) {
	p.snapshotLoads.WithLabelValues(category.String(), string(outcome)).Inc()
	p.loadDuration.WithLabelValues(category.String()).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveStaleServed(category domain.Category) {
	p.staleServed.WithLabelValues(category.String()).Inc()
}

func (p *PrometheusMetrics) ObserveInvalidation(category domain.Category) {
	p.invalidations.WithLabelValues(category.String()).Inc()
}

func (p *PrometheusMetrics) SetSnapshotItems(category domain.Category, count int) {
	p.snapshotItems.WithLabelValues(category.String()).Set(float64(count))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
