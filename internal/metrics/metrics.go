package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rz"

// Order submission outcomes.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	registry *prometheus.Registry

	requests            *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	ordersSubmitted     *prometheus.CounterVec
	reviewsSubmitted    prometheus.Counter
	realtimeSubscribers prometheus.Gauge
	realtimeDropped     *prometheus.CounterVec
}

// New builds the collectors on a private registry together with the
// go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Checkout submissions by result.",
		}, []string{"result"}),
		reviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Accepted product reviews.",
		}),
		realtimeSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscribers",
			Help:      "Open realtime subscriptions.",
		}),
		realtimeDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_dropped_events_total",
			Help:      "Events not delivered to a lagging subscriber.",
		}, []string{"topic"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.ordersSubmitted,
		m.reviewsSubmitted,
		m.realtimeSubscribers,
		m.realtimeDropped,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) OrderSubmitted(ok bool) {
	result := ResultSuccess
	if !ok {
		result = ResultFailure
	}
	m.ordersSubmitted.WithLabelValues(result).Inc()
}

func (m *Metrics) ReviewSubmitted() { m.reviewsSubmitted.Inc() }

func (m *Metrics) SubscriberAdded()   { m.realtimeSubscribers.Inc() }
func (m *Metrics) SubscriberRemoved() { m.realtimeSubscribers.Dec() }

func (m *Metrics) EventDropped(topic string) {
	m.realtimeDropped.WithLabelValues(topicLabel(topic)).Inc()
}

// topicLabel folds per-product review topics into one label value.
func topicLabel(topic string) string {
	prefix, _, _ := strings.Cut(topic, ":")
	return prefix
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Instrument records count and latency of h under the route pattern.
func (m *Metrics) Instrument(pattern string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := StartTimer()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		h.ServeHTTP(sw, r)

		m.requests.WithLabelValues(r.Method, pattern, strconv.Itoa(sw.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, pattern).Observe(timer.Duration().Seconds())
	})
}
