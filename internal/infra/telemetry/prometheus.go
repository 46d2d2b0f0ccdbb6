package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"jrpcd/internal/domain"
)

// PrometheusMetrics implements domain.Metrics.
type PrometheusMetrics struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchTotal    *prometheus.CounterVec
	envelopeItems    *prometheus.HistogramVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jrpcd_dispatch_duration_seconds",
				Help:    "Duration of procedure dispatches in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "status"},
		),
		dispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jrpcd_dispatch_total",
				Help: "Total number of dispatched procedure calls",
			},
			[]string{"method", "code"},
		),
		envelopeItems: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jrpcd_envelope_items",
				Help:    "Number of request items per incoming envelope",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"kind"},
		),
	}
}

func (p *PrometheusMetrics) ObserveDispatch(metric domain.DispatchMetric) {
	code := string(metric.Code)
	if code == "" {
		code = "ok"
	}
	p.dispatchDuration.WithLabelValues(metric.Method, string(metric.Status)).Observe(metric.Duration.Seconds())
	p.dispatchTotal.WithLabelValues(metric.Method, code).Inc()
}

func (p *PrometheusMetrics) ObserveEnvelope(kind domain.EnvelopeKind, items int) {
	p.envelopeItems.WithLabelValues(string(kind)).Observe(float64(items))
}
