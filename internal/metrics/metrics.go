// Package metrics exposes catalog and HTTP collectors for Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lehmann314159/dreamcars/internal/models"
)

type Metrics struct {
	registry *prometheus.Registry

	cars          prometheus.Gauge
	totalValue    prometheus.Gauge
	mutations     *prometheus.CounterVec
	persistErrors *prometheus.CounterVec
	requests      *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cars: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dreamcars_collection_cars",
			Help: "Number of cars in the collection.",
		}),
		totalValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dreamcars_collection_value_euros",
			Help: "Sum of all car prices.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dreamcars_mutations_total",
			Help: "Collection mutations by operation.",
		}, []string{"op"}),
		persistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dreamcars_persistence_errors_total",
			Help: "Failed storage reads and writes by key and direction.",
		}, []string{"key", "op"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dreamcars_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	m.registry.MustRegister(
		m.cars, m.totalValue, m.mutations, m.persistErrors, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveCollection(stats models.Stats) {
	if m == nil {
		return
	}
	m.cars.Set(float64(stats.Count))
	m.totalValue.Set(stats.TotalValue)
}

func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

func (m *Metrics) PersistenceError(key, op string) {
	if m == nil {
		return
	}
	m.persistErrors.WithLabelValues(key, op).Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
