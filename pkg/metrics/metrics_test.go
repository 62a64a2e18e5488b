package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

func TestRecordBTreeOperation(t *testing.T) {
	m := newTestMetrics()

	m.RecordBTreeOperation("insert", true, 10*time.Millisecond)
	m.RecordBTreeOperation("insert", false, 5*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.btreeOperationsTotal.WithLabelValues("insert", statusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.btreeOperationsTotal.WithLabelValues("insert", statusError)))
}

func TestUpdateBTreeStats(t *testing.T) {
	m := newTestMetrics()

	m.UpdateBTreeStats(42, 3)

	assert.Equal(t, float64(42), testutil.ToFloat64(m.btreeSize))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.btreeHeight))
}

func TestRecordRingOperation(t *testing.T) {
	m := newTestMetrics()

	m.RecordRingOperation("write", true, 128, 2*time.Millisecond)
	m.RecordRingOperation("write", false, 0, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ringOperationsTotal.WithLabelValues("write", statusSuccess)))
	assert.Equal(t, float64(128), testutil.ToFloat64(m.ringBytesTotal.WithLabelValues("write")))
}

func TestUpdateRingStats(t *testing.T) {
	m := newTestMetrics()

	m.UpdateRingStats(10, 20)

	assert.Equal(t, float64(10), testutil.ToFloat64(m.ringReadSpace))
	assert.Equal(t, float64(20), testutil.ToFloat64(m.ringWriteSpace))
}
