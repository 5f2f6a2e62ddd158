package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache operation outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
	CacheOK    = "ok"
)

// Recorder publishes Prometheus metrics for cache and HTTP activity.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	cacheOperations *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewRecorder constructs a Prometheus-backed Recorder. When reg is nil a
// dedicated registry is created so multiple recorders can coexist without
// conflicting with the global default registerer.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	r := &Recorder{
		gatherer: reg,
		cacheOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylekart_cache_operations_total",
			Help: "Cache store operations by entity namespace, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stylekart_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(r.cacheOperations, r.httpDuration)
	r.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return r
}

// ObserveCache records one cache operation.
func (r *Recorder) ObserveCache(entity, operation, outcome string) {
	if r == nil {
		return
	}
	r.cacheOperations.WithLabelValues(entity, operation, outcome).Inc()
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(method string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves the /metrics exposition endpoint.
func (r *Recorder) Handler() http.Handler {
	return r.handler
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.gatherer
}
