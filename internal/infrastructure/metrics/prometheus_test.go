package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/infrastructure/metrics"
)

func TestObserveOperation_LabelsByErrorKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveOperation("sale", nil)
	m.ObserveOperation("sale", &domain.InsufficientStockError{ProductID: 1, Requested: 6, Available: 4})
	m.ObserveOperation("sale", &domain.InsufficientStockError{ProductID: 1, Requested: 6, Available: 4})
	m.ObserveOperation("transaction", domain.NewValidationError("type", "x"))

	count, err := testutil.GatherAndCount(reg, "ledger_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestObserveResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveResolution("COMPLETE", 300*time.Millisecond)
	m.ObserveResolution("ERROR", 10*time.Second)

	count, err := testutil.GatherAndCount(reg, "intent_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", metrics.Result(nil))
	assert.Equal(t, "not_found", metrics.Result(domain.NewNotFoundError("produto", 9)))
	assert.Equal(t, "duplicate", metrics.Result(&domain.ConstraintError{Constraint: "companies_name_key"}))
	assert.Equal(t, "storage", metrics.Result(domain.WrapStorage("commit", errors.New("disk full"))))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("sale", nil)
		m.ObserveResolution("COMPLETE", time.Second)
	})
}
