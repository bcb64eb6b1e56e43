package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "composecheck"

// PrometheusHooks implements [AuditHooks] and [HTTPHooks] with Prometheus
// collectors on a private registry. It is safe for concurrent use.
type PrometheusHooks struct {
	registry *prometheus.Registry

	inflight  prometheus.Gauge
	audits    *prometheus.CounterVec
	findings  *prometheus.CounterVec
	recovered prometheus.Counter
	duration  prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheusHooks creates hooks backed by a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audits_in_flight",
			Help:      "Compatibility checks currently running.",
		}),
		audits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_total",
			Help:      "Compatibility checks by status (checked or skipped).",
		}, []string{"status"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Version mismatches found, by finding class.",
		}, []string{"class"}),
		recovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovered_failures_total",
			Help:      "Finding classes dropped after an internal failure.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_duration_seconds",
			Help:      "Duration of a single compatibility check.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "HTTP responses received while fetching resolution results.",
		}, []string{"host", "code"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "HTTP transport errors while fetching resolution results.",
		}, []string{"host"}),
	}
	h.registry.MustRegister(h.inflight, h.audits, h.findings, h.recovered, h.duration, h.httpRequests, h.httpErrors)
	return h
}

// Registry returns the registry holding all collectors.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes the current metrics in the text exposition format,
// for the node_exporter textfile collector.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PrometheusHooks) OnAuditStart(context.Context, string) {
	h.inflight.Inc()
}

func (h *PrometheusHooks) OnAuditComplete(_ context.Context, _ string, res AuditResult) {
	h.inflight.Dec()
	if res.Skipped {
		h.audits.WithLabelValues("skipped").Inc()
		return
	}
	h.audits.WithLabelValues("checked").Inc()
	h.findings.WithLabelValues("framework").Add(float64(res.FrameworkFindings))
	h.findings.WithLabelValues("skiko").Add(float64(res.SkikoFindings))
	h.recovered.Add(float64(res.Recovered))
	h.duration.Observe(res.Duration.Seconds())
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, _ time.Duration) {
	h.httpRequests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.httpErrors.WithLabelValues(host).Inc()
}

var (
	_ AuditHooks = (*PrometheusHooks)(nil)
	_ HTTPHooks  = (*PrometheusHooks)(nil)
)
