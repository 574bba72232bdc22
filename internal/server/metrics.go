package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry so tests can build as many
// as they need.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.HistogramVec
	mutations *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kanban_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanban_mutations_total",
				Help: "Board and task mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.mutations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMutation implements service.MutationRecorder.
func (m *Metrics) ObserveMutation(op, outcome string) {
	m.mutations.WithLabelValues(op, outcome).Inc()
}

// RegisterStateGauges exports the current number of boards and tasks.
func (m *Metrics) RegisterStateGauges(counts func() (boards, tasks int)) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kanban_boards",
			Help: "Boards in the current state",
		}, func() float64 {
			b, _ := counts()
			return float64(b)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kanban_tasks",
			Help: "Tasks in the current state",
		}, func() float64 {
			_, t := counts()
			return float64(t)
		}),
	)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request durations labelled with the matched chi
// route pattern rather than the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
