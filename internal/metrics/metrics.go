package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AssessmentsTotal     *prometheus.CounterVec
	SourceErrors         *prometheus.CounterVec
	SourceRequestSeconds *prometheus.HistogramVec
	CacheOps             *prometheus.CounterVec
	AlertsPublished      prometheus.Counter
	InflightAssessments  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AssessmentsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "floodwatch_assessments_total",
			Help: "Total number of computed flood risk assessments.",
		}, []string{"level"}),
		SourceErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "floodwatch_source_errors_total",
			Help: "Total number of upstream data source failures that fell back to mock data.",
		}, []string{"source"}),
		SourceRequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "floodwatch_source_request_duration_seconds",
			Help:    "Duration of requests to the upstream data source APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		CacheOps: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "floodwatch_cache_ops_total",
			Help: "Assessment cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		AlertsPublished: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "floodwatch_alerts_published_total",
			Help: "Total number of high-risk alerts published to the alert topic.",
		}),
		InflightAssessments: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "floodwatch_inflight_assessments",
			Help: "Current number of assessments being computed.",
		}),
	}
}
