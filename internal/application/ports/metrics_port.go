package ports

import "time"

// LedgerMetrics puerto de observabilidad de las operaciones del libro.
// Las implementaciones deben ser seguras para uso concurrente.
type LedgerMetrics interface {
	// ObserveOperation registra una operación ("sale", "intake", ...) y si falló.
	ObserveOperation(operation string, err error)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveOperation(string, error) {}

// IntentMetrics puerto de observabilidad del resolvedor de intenciones.
type IntentMetrics interface {
	// ObserveResolution registra el estado devuelto ("COMPLETE", "INCOMPLETE", "ERROR") y la latencia.
	ObserveResolution(status string, elapsed time.Duration)
}

func (NopMetrics) ObserveResolution(string, time.Duration) {}
