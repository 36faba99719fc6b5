package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	ordersPlaced   atomic.Uint64
	ordersExecuted atomic.Uint64
	ordersRejected atomic.Uint64
	errorsTotal    atomic.Uint64

	// HTTP latency tracking
	requestLatencySumNs atomic.Int64
	requestCount        atomic.Uint64

	// Gauges
	activeStreams atomic.Int32 // open websocket trade-stream subscribers
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordRequest records a handled HTTP request with latency.
func (m *Metrics) RecordRequest(latencyNs int64) {
	m.requestLatencySumNs.Add(latencyNs)
	m.requestCount.Add(1)
}

// RecordOrderPlaced records an accepted order.
func (m *Metrics) RecordOrderPlaced() {
	m.ordersPlaced.Add(1)
}

// RecordOrderExecuted records a synchronously executed market order.
func (m *Metrics) RecordOrderExecuted() {
	m.ordersExecuted.Add(1)
}

// RecordOrderRejected records a validation failure.
func (m *Metrics) RecordOrderRejected() {
	m.ordersRejected.Add(1)
}

// RecordError records an unexpected error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementStreams increments active stream subscribers by 1.
func (m *Metrics) IncrementStreams() {
	m.activeStreams.Add(1)
}

// DecrementStreams decrements active stream subscribers by 1.
func (m *Metrics) DecrementStreams() {
	m.activeStreams.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	OrdersPlaced   uint64    `json:"orders_placed"`
	OrdersExecuted uint64    `json:"orders_executed"`
	OrdersRejected uint64    `json:"orders_rejected"`
	ErrorsTotal    uint64    `json:"errors_total"`
	RequestsTotal  uint64    `json:"requests_total"`
	AvgLatencyNs   int64     `json:"avg_latency_ns"`
	ActiveStreams  int32     `json:"active_streams"`
	Timestamp      time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.requestCount.Load()
	if count > 0 {
		avgLatency = m.requestLatencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		OrdersPlaced:   m.ordersPlaced.Load(),
		OrdersExecuted: m.ordersExecuted.Load(),
		OrdersRejected: m.ordersRejected.Load(),
		ErrorsTotal:    m.errorsTotal.Load(),
		RequestsTotal:  count,
		AvgLatencyNs:   avgLatency,
		ActiveStreams:  m.activeStreams.Load(),
		Timestamp:      time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ordersPlaced.Store(0)
	m.ordersExecuted.Store(0)
	m.ordersRejected.Store(0)
	m.errorsTotal.Store(0)
	m.requestLatencySumNs.Store(0)
	m.requestCount.Store(0)
	m.activeStreams.Store(0)
}
