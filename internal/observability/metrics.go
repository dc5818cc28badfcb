package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "weavescope",
		Name:      "scans_processed_total",
		Help:      "Total number of scan submissions processed",
	})

	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weavescope",
		Name:      "alerts_raised_total",
		Help:      "Total number of monitoring alerts raised",
	}, []string{"risk_level"})

	SwatchesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weavescope",
		Name:      "swatches_rendered_total",
		Help:      "Total number of procedural swatches rendered",
	}, []string{"style"})

	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "weavescope",
		Name:      "reports_generated_total",
		Help:      "Total number of evidence reports composed",
	})

	ReportBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weavescope",
		Name:      "report_bytes",
		Help:      "Size of composed evidence reports",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 8),
	})

	PipelineStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weavescope",
		Name:      "pipeline_stage_duration_seconds",
		Help:      "Duration of scan pipeline stages",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"stage"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weavescope",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "weavescope",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
