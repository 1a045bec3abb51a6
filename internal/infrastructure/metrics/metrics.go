// Package metrics expone contadores Prometheus de HTTP y del libro de stock.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventaris-api/internal/application/inventory"
)

var _ inventory.Recorder = (*Metrics)(nil)

// Metrics agrupa los collectors sobre un registry propio (no el global).
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	stockOps        *prometheus.CounterVec
}

// New registra los collectors de la aplicación y los de runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventaris",
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventaris",
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		stockOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventaris",
			Name:      "stock_ledger_operations_total",
			Help:      "Operaciones del libro de stock por tipo y resultado.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(
		m.requests, m.requestDuration, m.stockOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// StockOperation implementa inventory.Recorder.
func (m *Metrics) StockOperation(op, result string) {
	m.stockOps.WithLabelValues(op, result).Inc()
}

// Middleware mide cada petición. La ruta es el patrón registrado (/api/items/:id), no la URL.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
