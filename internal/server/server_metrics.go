package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "samqfsui"

type consoleMetrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	popupPlans   *prometheus.CounterVec
	validations  *prometheus.CounterVec
	operations   prometheus.Counter
	hostResults  *prometheus.CounterVec
}

// newConsoleMetrics uses a private registry so tests can build many servers
// in one process.
func newConsoleMetrics() *consoleMetrics {
	m := &consoleMetrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		popupPlans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "popup",
			Name:      "plans_total",
			Help:      "Popup launch plans by preset and outcome.",
		}, []string{"preset", "outcome"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "validate",
			Name:      "checks_total",
			Help:      "Validation checks by kind and result.",
		}, []string{"kind", "result"}),
		// Operation kinds are caller-supplied, so they are not a label.
		operations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "operations",
			Name:      "created_total",
			Help:      "Multi-host operations created.",
		}),
		hostResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "operations",
			Name:      "host_results_total",
			Help:      "Host results applied, by status. Updates to hosts already in a terminal status are not counted.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.httpRequests,
		m.popupPlans,
		m.validations,
		m.operations,
		m.hostResults,
	)
	return m
}

func (m *consoleMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *consoleMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(code)).Inc()
	})
}
