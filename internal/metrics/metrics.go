package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation batch metrics exposed on /metrics.
var (
	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatdemand_batches_total",
		Help: "Calculation batches run.",
	})

	ZonesCalculated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatdemand_zones_calculated_total",
		Help: "Zones that completed the monthly balance.",
	})

	ZonesExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatdemand_zones_excluded_total",
		Help: "Zones excluded for degenerate configuration.",
	})

	ZonesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatdemand_zones_failed_total",
		Help: "Zones aborted by a hard per-zone error.",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "heatdemand_batch_duration_seconds",
		Help:    "Wall time of one calculation batch.",
		Buckets: prometheus.DefBuckets,
	})
)
