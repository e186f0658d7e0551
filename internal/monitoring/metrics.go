package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports Prometheus metrics for the serving process
type Collector struct {
	registry *prometheus.Registry

	mutations  *prometheus.CounterVec
	quotes     prometheus.Counter
	quoteTotal prometheus.Histogram
	sessions   prometheus.Gauge
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "config_mutations_total",
			Help: "Configuration edits by operation",
		},
		[]string{"op"},
	)

	quotes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quotes_computed_total",
			Help: "Number of quote computations served",
		},
	)

	quoteTotal := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_total_amount",
			Help:    "Distribution of quoted totals",
			Buckets: prometheus.ExponentialBuckets(100, 2, 12),
		},
	)

	sessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Customer sessions currently held in memory",
		},
	)

	registry.MustRegister(mutations, quotes, quoteTotal, sessions)

	return &Collector{
		registry:   registry,
		mutations:  mutations,
		quotes:     quotes,
		quoteTotal: quoteTotal,
		sessions:   sessions,
	}
}

// RecordMutation counts one configuration edit
func (c *Collector) RecordMutation(op string) {
	c.mutations.WithLabelValues(op).Inc()
}

// RecordQuote counts one quote computation and observes its total
func (c *Collector) RecordQuote(total int) {
	c.quotes.Inc()
	c.quoteTotal.Observe(float64(total))
}

// SetSessions updates the live session gauge
func (c *Collector) SetSessions(n int) {
	c.sessions.Set(float64(n))
}

// Handler returns the scrape handler for the metrics server
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
