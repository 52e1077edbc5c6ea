// Package metrics exposes Prometheus collectors for the HTTP surface and the
// order pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

const namespace = "basecart"

type Metrics struct {
	registry *prometheus.Registry

	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	ordersCreated *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	menuImported  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders submitted, split by whether they belong to a business.",
		}, []string{"scoped"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Order status changes by target status.",
		}, []string{"status"}),
		menuImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "import_rows_total",
			Help:      "Bulk import rows by outcome.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.ordersCreated,
		m.statusChanges,
		m.menuImported,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by the mux route
// template, so ids and slugs do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := routeTemplate(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) OrderCreated(businessID *int64) {
	scoped := "false"
	if businessID != nil {
		scoped = "true"
	}
	m.ordersCreated.WithLabelValues(scoped).Inc()
}

func (m *Metrics) OrderStatusChanged(status domain.Status) {
	m.statusChanges.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) MenuItemsImported(imported, failed int) {
	m.menuImported.WithLabelValues("imported").Add(float64(imported))
	m.menuImported.WithLabelValues("failed").Add(float64(failed))
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Nop satisfies interfaces.Metrics without recording anything.
type Nop struct{}

func (Nop) OrderCreated(*int64)              {}
func (Nop) OrderStatusChanged(domain.Status) {}
func (Nop) MenuItemsImported(int, int)       {}
