// Package metrics exposes prometheus instruments for the pricing and order paths.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	quotesResolved *prometheus.CounterVec
	ordersCreated  *prometheus.CounterVec
	exportRows     prometheus.Counter
}

// New registers the application instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		quotesResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boostpanel",
			Name:      "quotes_resolved_total",
			Help:      "Price quotes resolved, labelled by resolution source.",
		}, []string{"source"}),
		ordersCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boostpanel",
			Name:      "orders_created_total",
			Help:      "Orders accepted, labelled by currency.",
		}, []string{"currency"}),
		exportRows: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "boostpanel",
			Name:      "order_export_rows_total",
			Help:      "Order rows written to CSV exports.",
		}),
	}
}

// QuoteResolved records one resolved quote.
func (m *Metrics) QuoteResolved(source string) {
	if m == nil {
		return
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = "unknown"
	}
	m.quotesResolved.WithLabelValues(source).Inc()
}

// OrderCreated records one accepted order.
func (m *Metrics) OrderCreated(currency string) {
	if m == nil {
		return
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "unknown"
	}
	m.ordersCreated.WithLabelValues(currency).Inc()
}

// ExportRows records rows written by a CSV export.
func (m *Metrics) ExportRows(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.exportRows.Add(float64(n))
}
