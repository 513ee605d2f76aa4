// Package prometheus instruments coordinate lookups with Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/nerview"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for lookup instrumentation.
type Metrics struct {
	registry       *prom.Registry
	lookupsTotal   *prom.CounterVec
	lookupSeconds  *prom.HistogramVec
	extractedTotal prom.Counter
}

// NewMetrics creates collectors registered on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		lookupsTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "nerview_lookups_total",
			Help: "Total number of coordinate lookups by outcome",
		}, []string{"outcome"}),
		lookupSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "nerview_lookup_seconds",
			Help:    "Coordinate lookup duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"outcome"}),
		extractedTotal: prom.NewCounter(prom.CounterOpts{
			Name: "nerview_documents_extracted_total",
			Help: "Total number of documents extracted",
		}),
	}
	m.registry.MustRegister(m.lookupsTotal, m.lookupSeconds, m.extractedTotal)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prom.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncExtracted counts one extracted document.
func (m *Metrics) IncExtracted() {
	m.extractedTotal.Inc()
}

// Outcome labels.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Outcome classifies a lookup error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeFound
	case nerview.ErrorCode(err) == nerview.ENOTFOUND:
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// Ensure Resolver implements nerview.Resolver.
var _ nerview.Resolver = (*Resolver)(nil)

// Resolver records the outcome and duration of every lookup it forwards.
type Resolver struct {
	next    nerview.Resolver
	metrics *Metrics
}

// NewResolver wraps next with instrumentation.
func NewResolver(next nerview.Resolver, metrics *Metrics) *Resolver {
	return &Resolver{next: next, metrics: metrics}
}

// Resolve delegates to the wrapped resolver.
func (r *Resolver) Resolve(ctx context.Context, qid string) (*nerview.Place, error) {
	begin := time.Now()
	place, err := r.next.Resolve(ctx, qid)

	outcome := Outcome(err)
	r.metrics.lookupsTotal.WithLabelValues(outcome).Inc()
	r.metrics.lookupSeconds.WithLabelValues(outcome).Observe(time.Since(begin).Seconds())

	return place, err
}
