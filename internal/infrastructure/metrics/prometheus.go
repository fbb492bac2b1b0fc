// Package metrics expone colectores Prometheus para el libro y el resolvedor de intenciones.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
)

var (
	_ ports.LedgerMetrics = (*Metrics)(nil)
	_ ports.IntentMetrics = (*Metrics)(nil)
)

// Metrics colectores del servicio.
type Metrics struct {
	operations  *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	latency     prometheus.Histogram
}

// New registra los colectores en registerer (nil = registerer por defecto).
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Operaciones del libro por tipo y resultado.",
		}, []string{"operation", "result"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intent_resolutions_total",
			Help: "Resoluciones de intención por estado devuelto.",
		}, []string{"status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intent_resolver_duration_seconds",
			Help:    "Latencia de las llamadas al resolvedor de intenciones.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		}),
	}
	registerer.MustRegister(m.operations, m.resolutions, m.latency)
	return m
}

// ObserveOperation cuenta la operación con su resultado clasificado por tipo de error.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, Result(err)).Inc()
}

// ObserveResolution cuenta la resolución y registra su latencia.
func (m *Metrics) ObserveResolution(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(status).Inc()
	m.latency.Observe(elapsed.Seconds())
}

// Result etiqueta de resultado para err.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "storage"
	}
}
