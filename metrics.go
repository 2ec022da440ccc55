package restkit

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request
// lifecycle. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	errorsTotal      *prometheus.CounterVec
	timeoutsTotal    prometheus.Counter
}

// NewMetricsCollector creates a collector registered with the default
// Prometheus registry.
func NewMetricsCollector() *MetricsCollector {
	return newMetricsCollector(promauto.With(prometheus.DefaultRegisterer))
}

// NewMetricsCollectorWithRegistry creates a collector registered with a
// custom registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return newMetricsCollector(promauto.With(registry))
}

func newMetricsCollector(factory promauto.Factory) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "restkit_requests_total",
			Help: "Total requests by method and outcome (status code or \"error\").",
		}, []string{"method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restkit_request_duration_seconds",
			Help:    "Request duration from submission to settled outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "restkit_requests_in_flight",
			Help: "Requests currently in flight.",
		}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "restkit_errors_total",
			Help: "Failed requests by error code.",
		}, []string{"code"}),
		timeoutsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "restkit_timeouts_total",
			Help: "Requests aborted by the timeout guard.",
		}),
	}
}

// observe records one settled outcome.
func (m *MetricsCollector) observe(method string, status int, err error, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if err != nil {
		code := "unknown"
		var e *Error
		if errors.As(err, &e) {
			code = e.Code.String()
		}
		m.errorsTotal.WithLabelValues(code).Inc()
		if IsTimeout(err) {
			m.timeoutsTotal.Inc()
		}
		m.requestsTotal.WithLabelValues(method, "error").Inc()
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
