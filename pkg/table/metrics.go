package table

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters a Host updates
type Metrics struct {
	rowsVisited   *prometheus.CounterVec
	rowsPersisted *prometheus.CounterVec
	rowsAppended  *prometheus.CounterVec
	callbackStops *prometheus.CounterVec
	rowErrors     *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rowsVisited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfrec_rows_visited_total",
				Help: "Rows handed to a row-edit callback",
			},
			[]string{"table"},
		),
		rowsPersisted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfrec_rows_persisted_total",
				Help: "Modified rows written back to storage",
			},
			[]string{"table"},
		),
		rowsAppended: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfrec_rows_appended_total",
				Help: "Rows appended to a table",
			},
			[]string{"table"},
		),
		callbackStops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfrec_callback_stops_total",
				Help: "Row loops ended early by a callback",
			},
			[]string{"table"},
		),
		rowErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfrec_row_errors_total",
				Help: "Row operations that failed",
			},
			[]string{"table", "operation"},
		),
	}
}

// The helpers below are no-ops on a nil *Metrics so a Host can run without
// metrics.

func (m *Metrics) visited(table string) {
	if m != nil {
		m.rowsVisited.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) persisted(table string) {
	if m != nil {
		m.rowsPersisted.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) appended(table string) {
	if m != nil {
		m.rowsAppended.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) stopped(table string) {
	if m != nil {
		m.callbackStops.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) failed(table, operation string) {
	if m != nil {
		m.rowErrors.WithLabelValues(table, operation).Inc()
	}
}
