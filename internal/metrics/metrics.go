package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the counters the report pipeline maintains. Each
// Collector owns its registry so tests can build isolated instances.
type Collector struct {
	registry *prometheus.Registry

	ReportsGenerated prometheus.Counter
	ReportsFailed    *prometheus.CounterVec
	RowsProcessed    prometheus.Counter
	RowsSkipped      prometheus.Counter
	GenerateDuration prometheus.Histogram
}

// NewCollector creates a collector with process and Go runtime metrics
// pre-registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "supstats_reports_generated_total",
			Help: "Reports generated successfully.",
		}),
		ReportsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supstats_reports_failed_total",
			Help: "Failed report runs by error type.",
		}, []string{"type"}),
		RowsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "supstats_rows_processed_total",
			Help: "Dataset rows rendered into reports.",
		}),
		RowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "supstats_rows_skipped_total",
			Help: "Dataset rows dropped for an unparseable date.",
		}),
		GenerateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "supstats_report_duration_seconds",
			Help:    "Wall time of a full report run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler serves the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
