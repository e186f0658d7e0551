package monitoring

import (
	"sync"
	"time"
)

// Monitor collects runtime statistics for the stats endpoint
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

// Increment bumps a counter metric by one
func (m *Monitor) Increment(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	if current, ok := m.metrics[name].(int); ok {
		m.metrics[name] = current + 1
		return
	}
	m.metrics[name] = 1
}

// RecordMutation records one configuration edit by operation name
func (m *Monitor) RecordMutation(op string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	key := "mutations_" + op
	if current, ok := m.metrics[key].(int); ok {
		m.metrics[key] = current + 1
	} else {
		m.metrics[key] = 1
	}
	m.metrics["last_mutation"] = op
	m.metrics["last_mutation_at"] = time.Now().Format(time.RFC3339)
}

// RecordQuote records the most recent quote computation
func (m *Monitor) RecordQuote(total int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	if current, ok := m.metrics["quotes_computed"].(int); ok {
		m.metrics["quotes_computed"] = current + 1
	} else {
		m.metrics["quotes_computed"] = 1
	}
	m.metrics["last_quote_total"] = total
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

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
