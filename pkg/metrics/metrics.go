// Package metrics provides Prometheus instrumentation for the bench CLIs in
// cmd/btreebench and cmd/ringbench.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics emitted by the bench CLIs.
type Metrics struct {
	// BTree operation metrics
	btreeOperationsTotal   *prometheus.CounterVec
	btreeOperationDuration *prometheus.HistogramVec
	btreeSize              prometheus.Gauge
	btreeHeight            prometheus.Gauge

	// Ring operation metrics
	ringOperationsTotal   *prometheus.CounterVec
	ringOperationDuration *prometheus.HistogramVec
	ringBytesTotal        *prometheus.CounterVec
	ringReadSpace         prometheus.Gauge
	ringWriteSpace        prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics against the
// default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates and registers all Prometheus metrics against reg,
// so callers (and tests) that don't want to share the global default
// registry can supply their own prometheus.NewRegistry().
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		btreeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btreering_btree_operations_total",
				Help: "Total number of BTree operations",
			},
			[]string{"operation", "status"},
		),

		btreeOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "btreering_btree_operation_duration_seconds",
				Help:    "BTree operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		btreeSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "btreering_btree_size",
				Help: "Number of elements currently in the tree",
			},
		),

		btreeHeight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "btreering_btree_height",
				Help: "Current height of the tree",
			},
		),

		ringOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btreering_ring_operations_total",
				Help: "Total number of ring read/write operations",
			},
			[]string{"operation", "status"},
		),

		ringOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "btreering_ring_operation_duration_seconds",
				Help:    "Ring operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		ringBytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btreering_ring_bytes_total",
				Help: "Total bytes moved through the ring",
			},
			[]string{"operation"},
		),

		ringReadSpace: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "btreering_ring_read_space_bytes",
				Help: "Bytes immediately available to read from the ring",
			},
		),

		ringWriteSpace: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "btreering_ring_write_space_bytes",
				Help: "Bytes immediately available to write into the ring",
			},
		),
	}
}

// RecordBTreeOperation records one BTree operation (insert, remove, find,
// lower_bound).
func (m *Metrics) RecordBTreeOperation(operation string, success bool, duration time.Duration) {
	st := statusSuccess
	if !success {
		st = statusError
	}
	m.btreeOperationsTotal.WithLabelValues(operation, st).Inc()
	m.btreeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateBTreeStats updates the tree's gauge metrics.
func (m *Metrics) UpdateBTreeStats(size, height int) {
	m.btreeSize.Set(float64(size))
	m.btreeHeight.Set(float64(height))
}

// RecordRingOperation records one ring operation (read, write, peek, skip).
func (m *Metrics) RecordRingOperation(operation string, success bool, bytes int, duration time.Duration) {
	st := statusSuccess
	if !success {
		st = statusError
	}
	m.ringOperationsTotal.WithLabelValues(operation, st).Inc()
	m.ringOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if success {
		m.ringBytesTotal.WithLabelValues(operation).Add(float64(bytes))
	}
}

// UpdateRingStats updates the ring's gauge metrics.
func (m *Metrics) UpdateRingStats(readSpace, writeSpace uint32) {
	m.ringReadSpace.Set(float64(readSpace))
	m.ringWriteSpace.Set(float64(writeSpace))
}
