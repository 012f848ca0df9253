package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "briefing"

// PrometheusMetrics реализует MetricsPort. Метрики регистрируются в собственном реестре.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	pipelineRuns     *prometheus.HistogramVec
	pipelineFiltered prometheus.Gauge
	pipelineTotal    prometheus.Gauge
	statusChanges    *prometheus.CounterVec
	storageFailures  *prometheus.CounterVec
	fetchFailures    *prometheus.CounterVec
	publishFailures  *prometheus.CounterVec
	sessionsActive   prometheus.Gauge
}

func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		pipelineRuns: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_run_seconds",
			Help:      "Duration of listing pipeline runs",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind"}),
		pipelineTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_last_total",
			Help:      "Listings left after filters in the last pipeline run",
		}),
		pipelineFiltered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_last_filtered",
			Help:      "Listings left after the briefing filter in the last pipeline run",
		}),
		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_changes_total",
			Help:      "Briefing status changes by new status",
		}, []string{"status"}),
		storageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_failures_total",
			Help:      "Failed briefing storage operations",
		}, []string{"operation"}),
		fetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Failed backend fetches",
		}, []string{"source"}),
		publishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Events that could not be published",
		}, []string{"event"}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Open viewer sessions",
		}),
	}
}

func (m *PrometheusMetrics) ObservePipelineRun(kind string, duration time.Duration, total, filtered int) {
	m.pipelineRuns.WithLabelValues(kind).Observe(duration.Seconds())
	m.pipelineTotal.Set(float64(total))
	m.pipelineFiltered.Set(float64(filtered))
}

func (m *PrometheusMetrics) BriefingStatusChanged(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) StorageFailure(operation string) {
	m.storageFailures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) FetchFailure(source string) {
	m.fetchFailures.WithLabelValues(source).Inc()
}

func (m *PrometheusMetrics) PublishFailure(event string) {
	m.publishFailures.WithLabelValues(event).Inc()
}

func (m *PrometheusMetrics) SessionsActive(count int) {
	m.sessionsActive.Set(float64(count))
}

// Handler отдает метрики реестра в формате Prometheus.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
