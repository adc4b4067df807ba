package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	analyticsRequests  *prometheus.CounterVec
	analyticsDuration  prometheus.Histogram
	summaryRequests    *prometheus.CounterVec
	seedRuns           *prometheus.CounterVec
	seedDuration       prometheus.Histogram
	httpErrorsTotal    *prometheus.CounterVec
	rateLimitRejected  prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		analyticsRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_requests_total",
				Help: "Total number of analytics report requests",
			},
			[]string{"type", "status"},
		),
		analyticsDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analytics_compute_duration_milliseconds",
				Help:    "Analytics report computation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		summaryRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summary_requests_total",
				Help: "Total number of summary statistics requests",
			},
			[]string{"status"},
		),
		seedRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sample_data_seed_runs_total",
				Help: "Total number of sample data seeding runs",
			},
			[]string{"status"},
		),
		seedDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sample_data_seed_duration_milliseconds",
				Help:    "Sample data seeding duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		httpErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP error responses",
			},
			[]string{"code"},
		),
		rateLimitRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limit_rejected_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "analytics.request":
		m.analyticsRequests.WithLabelValues(tags["type"], status).Inc()
	case "summary.request":
		if status != "" {
			m.summaryRequests.WithLabelValues(status).Inc()
		}
	case "seed.run":
		if status != "" {
			m.seedRuns.WithLabelValues(status).Inc()
		}
	case "http.error":
		m.httpErrorsTotal.WithLabelValues(tags["code"]).Inc()
	case "rate_limit.rejected":
		m.rateLimitRejected.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "analytics.compute":
		m.analyticsDuration.Observe(float64(duration.Milliseconds()))
	case "seed.run":
		m.seedDuration.Observe(float64(duration.Milliseconds()))
	}
}
