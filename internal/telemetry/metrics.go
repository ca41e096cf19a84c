package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds the Prometheus collectors for generation and line of sight.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	GenerationDuration prometheus.Histogram
	RoomsPlaced        *prometheus.CounterVec
	HallwaysCarved     prometheus.Counter
	FillRatio          prometheus.Gauge
	ItemsPlaced        prometheus.Gauge
	VisibilityQueries  prometheus.Counter
}

// NewMetrics creates collectors under namespace and registers them on a
// private registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating a dungeon",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		RoomsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_placed_total",
			Help:      "Rooms accepted by the placement engine",
		}, []string{"phase"}),
		HallwaysCarved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hallways_carved_total",
			Help:      "Hallways carved between rooms",
		}),
		FillRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fill_ratio",
			Help:      "Floor fill ratio of the last generated dungeon",
		}),
		ItemsPlaced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items_placed",
			Help:      "Items placed in the last generated dungeon",
		}),
		VisibilityQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_queries_total",
			Help:      "Line of sight recomputations",
		}),
	}

	m.registry.MustRegister(
		m.GenerationDuration,
		m.RoomsPlaced,
		m.HallwaysCarved,
		m.FillRatio,
		m.ItemsPlaced,
		m.VisibilityQueries,
	)

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr in the background.
func (m *Metrics) StartServer(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	return srv
}

// ObserveGeneration records one finished generation run.
func (m *Metrics) ObserveGeneration(d time.Duration, fillRatio float64, items int) {
	if m == nil {
		return
	}
	m.GenerationDuration.Observe(d.Seconds())
	m.FillRatio.Set(fillRatio)
	m.ItemsPlaced.Set(float64(items))
}

// IncRoomsPlaced counts an accepted room for the given phase.
func (m *Metrics) IncRoomsPlaced(phase string) {
	if m == nil {
		return
	}
	m.RoomsPlaced.WithLabelValues(phase).Inc()
}

// IncHallways counts a carved hallway.
func (m *Metrics) IncHallways() {
	if m == nil {
		return
	}
	m.HallwaysCarved.Inc()
}

// IncVisibility counts a line of sight recomputation.
func (m *Metrics) IncVisibility() {
	if m == nil {
		return
	}
	m.VisibilityQueries.Inc()
}
