package retry

import "sync"

// Metrics tracks retry statistics across all calls through the policies
// bound to it. Increments are mutex-guarded so a single instance can be
// shared by concurrently executing wrapped calls.
type Metrics struct {
	mu                  sync.Mutex
	totalCalls          int64
	retriesPerformed    int64
	successesAfterRetry int64
}

// Snapshot is a read-only view of the counters and their derived rates.
type Snapshot struct {
	TotalCalls          int64
	RetriesPerformed    int64
	SuccessesAfterRetry int64

	// RetryRate is RetriesPerformed / TotalCalls.
	RetryRate float64
	// SuccessAfterRetryRate is SuccessesAfterRetry / RetriesPerformed.
	SuccessAfterRetryRate float64
	// AvgRetriesPerCall is RetriesPerformed / TotalCalls.
	AvgRetriesPerCall float64
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an isolated metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Default returns the process-wide metrics instance shared by policies
// created with New.
func Default() *Metrics {
	return defaultMetrics
}

func (m *Metrics) recordCall() {
	m.mu.Lock()
	m.totalCalls++
	m.mu.Unlock()
}

func (m *Metrics) recordRetry() {
	m.mu.Lock()
	m.retriesPerformed++
	m.mu.Unlock()
}

func (m *Metrics) recordSuccessAfterRetry() {
	m.mu.Lock()
	m.successesAfterRetry++
	m.mu.Unlock()
}

// Snapshot returns the current counters and rates. Rates with a zero
// denominator report 0.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		TotalCalls:          m.totalCalls,
		RetriesPerformed:    m.retriesPerformed,
		SuccessesAfterRetry: m.successesAfterRetry,
	}
	if m.totalCalls > 0 {
		s.RetryRate = float64(m.retriesPerformed) / float64(m.totalCalls)
		s.AvgRetriesPerCall = float64(m.retriesPerformed) / float64(m.totalCalls)
	}
	if m.retriesPerformed > 0 {
		s.SuccessAfterRetryRate = float64(m.successesAfterRetry) / float64(m.retriesPerformed)
	}
	return s
}

// Reset zeroes all counters. Intended to be called between independent
// test cases sharing the default instance.
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.totalCalls = 0
	m.retriesPerformed = 0
	m.successesAfterRetry = 0
	m.mu.Unlock()
}

// GetMetrics returns a snapshot of the default metrics instance.
func GetMetrics() Snapshot {
	return defaultMetrics.Snapshot()
}

// ResetMetrics zeroes the default metrics instance.
func ResetMetrics() {
	defaultMetrics.Reset()
}
