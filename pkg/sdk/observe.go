package pawfect

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeHit   = "hit"
	outcomeEmpty = "empty"
	outcomeError = "error"
)

// clientMetrics are the embedded engine's search and catalog metrics.
type clientMetrics struct {
	searches *prometheus.CounterVec
	hits     prometheus.Histogram
	loads    *prometheus.CounterVec
	products prometheus.Gauge
	latency  *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{}
	var err error
	if m.searches, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pawfect",
		Subsystem: "client",
		Name:      "searches_total",
		Help:      "Searches by outcome (hit, empty, error).",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if m.hits, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pawfect",
		Subsystem: "client",
		Name:      "search_hits",
		Help:      "Products returned per successful search.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})); err != nil {
		return nil, err
	}
	if m.loads, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pawfect",
		Subsystem: "client",
		Name:      "catalog_loads_total",
		Help:      "Catalog loads (open, reload) by status.",
	}, []string{"trigger", "status"})); err != nil {
		return nil, err
	}
	if m.products, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pawfect",
		Subsystem: "client",
		Name:      "catalog_products",
		Help:      "Products in the active catalog.",
	})); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pawfect",
		Subsystem: "client",
		Name:      "operation_duration_seconds",
		Help:      "Embedded client operation duration in seconds.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an equal collector is already registered,
// that one is returned so several clients can share a registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("pawfect: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("pawfect: metric already registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer records client activity to an optional logger and registry.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) search(category, query string, start time.Time, hits int, err error) {
	dur := time.Since(start)
	outcome := outcomeHit
	switch {
	case err != nil:
		outcome = outcomeError
	case hits == 0:
		outcome = outcomeEmpty
	}

	if o.metrics != nil {
		o.metrics.searches.WithLabelValues(outcome).Inc()
		o.metrics.latency.WithLabelValues("search").Observe(dur.Seconds())
		if err == nil {
			o.metrics.hits.Observe(float64(hits))
		}
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("search failed",
			"category", category, "query_len", len(query), "duration", dur, "error", err)
		return
	}
	o.logger.Debug("search",
		"category", category, "outcome", outcome, "hits", hits, "duration", dur)
}

// load records an open or reload of the catalog; products is the size of the
// catalog now serving searches.
func (o *observer) load(trigger string, start time.Time, products int, err error) {
	dur := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}

	if o.metrics != nil {
		o.metrics.loads.WithLabelValues(trigger, status).Inc()
		o.metrics.latency.WithLabelValues(trigger).Observe(dur.Seconds())
		if err == nil {
			o.metrics.products.Set(float64(products))
		}
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("catalog load failed", "trigger", trigger, "duration", dur, "error", err)
		return
	}
	o.logger.Info("catalog loaded", "trigger", trigger, "products", products, "duration", dur)
}

func (o *observer) categories(start time.Time, n int, err error) {
	dur := time.Since(start)
	if o.metrics != nil {
		o.metrics.latency.WithLabelValues("categories").Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("categories failed", "duration", dur, "error", err)
		return
	}
	o.logger.Debug("categories", "count", n, "duration", dur)
}
