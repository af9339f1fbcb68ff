// Package metrics defines the Prometheus instruments of the accountant
// server. All metrics live on one struct so that handlers, services and
// workers share a single registration point.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP surface
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Sync reconciler
	SyncBatches  prometheus.Counter
	SyncEntities *prometheus.CounterVec

	// Recurring materializer
	RecurringInstancesCreated prometheus.Counter

	// Rate limiting
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics registered against reg. Tests pass a fresh
// registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accountant_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accountant_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		SyncBatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "accountant_sync_batches_total",
			Help: "Total sync batches reconciled",
		}),
		SyncEntities: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accountant_sync_entities_total",
				Help: "Total sync entities processed by outcome",
			},
			[]string{"outcome"},
		),

		RecurringInstancesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "accountant_recurring_instances_created_total",
			Help: "Total transaction instances materialized from recurring schedules",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "accountant_rate_limit_hits_total",
			Help: "Total requests throttled by the per-IP rate limiter",
		}),
	}
}
