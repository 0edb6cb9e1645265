package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation_DisabledIsNoop(t *testing.T) {
	MetricSystemEnabled = false
	assert.NotPanics(t, func() {
		ObserveOperation("add_loan", "ok", time.Now())
		IncBackup("ok")
	})
}

func TestCreateAndObserve(t *testing.T) {
	require.NoError(t, Create("test-host", "test", "ledger_test"))
	t.Cleanup(func() {
		MetricSystemEnabled = false
	})

	ObserveOperation("add_loan", "ok", time.Now())
	ObserveOperation("add_loan", "ok", time.Now())
	ObserveOperation("add_loan", "validation", time.Now())
	IncBackup("ok")

	ops := MetricCollectionCounterVec[SystemLedger+MetricOperationsTotal]
	assert.Equal(t, float64(2), testutil.ToFloat64(ops.WithLabelValues("add_loan", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ops.WithLabelValues("add_loan", "validation")))

	backups := MetricCollectionCounterVec[SystemLedger+MetricBackupsTotal]
	assert.Equal(t, float64(1), testutil.ToFloat64(backups.WithLabelValues("ok")))

	durations := MetricCollectionHistogramVec[SystemLedger+MetricOperationDuration]
	assert.Equal(t, 1, testutil.CollectAndCount(durations))
}
