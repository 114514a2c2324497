package monitoring

import (
	"sync"
	"time"

	"brigade/internal/kitchen"
)

// Monitor keeps a JSON-friendly view of kitchen activity for the API
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// Increment adds delta to an integer counter, starting it at zero.
func (m *Monitor) Increment(name string, delta int64) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	current, _ := m.metrics[name].(int64)
	m.metrics[name] = current + delta
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordBatch stores the outcome of the last batch pass.
func (m *Monitor) RecordBatch(summary kitchen.BatchSummary) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	units := 0
	for _, w := range summary.Withdrawals {
		units += w.Quantity
	}

	m.metrics["last_batch_prepared"] = len(summary.Prepared)
	m.metrics["last_batch_requeued"] = len(summary.Requeued)
	m.metrics["last_batch_discarded"] = summary.Discarded
	m.metrics["last_batch_backup_units"] = units
	m.metrics["last_batch_at"] = time.Now().Format(time.RFC3339)
}
