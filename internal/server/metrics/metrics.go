package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passkeeper"

// Metrics holds the service collectors. All methods are safe on a nil receiver,
// so components can be constructed without metrics in tests.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	recordOps       *prometheus.CounterVec
	decodeFailures  *prometheus.CounterVec
	legacyEncrypted prometheus.Counter
}

// New creates collectors and registers them in reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_operations_total",
			Help:      "Credential record operations by operation and result",
		}, []string{"op", "result"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secret_decode_failures_total",
			Help:      "Stored secrets that could not be decoded, by reason",
		}, []string{"reason"}),
		legacyEncrypted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legacy_secrets_encrypted_total",
			Help:      "Legacy plaintext secrets re-encrypted in place",
		}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.recordOps, m.decodeFailures, m.legacyEncrypted)

	return m
}

// NewRegistry returns a registry with Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveHTTP records a finished HTTP request
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveRecordOp records the outcome of a record operation
func (m *Metrics) ObserveRecordOp(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.recordOps.WithLabelValues(op, result).Inc()
}

// DecodeFailure counts a secret that could not be decoded
func (m *Metrics) DecodeFailure(reason string) {
	if m == nil {
		return
	}
	m.decodeFailures.WithLabelValues(reason).Inc()
}

// LegacyEncrypted counts a re-encrypted legacy secret
func (m *Metrics) LegacyEncrypted() {
	if m == nil {
		return
	}
	m.legacyEncrypted.Inc()
}
