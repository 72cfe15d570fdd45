package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks plan generation and engine usage
type Metrics struct {
	llmCalls          int64
	llmErrors         int64
	llmLatency        int64 // Total latency in nanoseconds
	cacheHits         int64
	cacheMisses       int64
	estimatesComputed int64
	narrativeFailures int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	LLMCalls          int64   `json:"llm_calls"`
	LLMErrors         int64   `json:"llm_errors"`
	LLMErrorRate      float64 `json:"llm_error_rate_percent"`
	AvgLLMLatencyMs   float64 `json:"avg_llm_latency_ms"`
	CacheHits         int64   `json:"cache_hits"`
	CacheMisses       int64   `json:"cache_misses"`
	EstimatesComputed int64   `json:"estimates_computed"`
	NarrativeFailures int64   `json:"narrative_failures"`
}

// Snapshot returns the current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	calls := atomic.LoadInt64(&m.llmCalls)
	errs := atomic.LoadInt64(&m.llmErrors)
	latency := atomic.LoadInt64(&m.llmLatency)

	s := MetricsSnapshot{
		LLMCalls:          calls,
		LLMErrors:         errs,
		CacheHits:         atomic.LoadInt64(&m.cacheHits),
		CacheMisses:       atomic.LoadInt64(&m.cacheMisses),
		EstimatesComputed: atomic.LoadInt64(&m.estimatesComputed),
		NarrativeFailures: atomic.LoadInt64(&m.narrativeFailures),
	}
	if calls > 0 {
		s.LLMErrorRate = float64(errs) / float64(calls) * 100
		s.AvgLLMLatencyMs = float64(latency) / float64(calls) / 1e6
	}
	return s
}

// Reset zeroes all counters (useful for testing)
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.llmCalls, 0)
	atomic.StoreInt64(&m.llmErrors, 0)
	atomic.StoreInt64(&m.llmLatency, 0)
	atomic.StoreInt64(&m.cacheHits, 0)
	atomic.StoreInt64(&m.cacheMisses, 0)
	atomic.StoreInt64(&m.estimatesComputed, 0)
	atomic.StoreInt64(&m.narrativeFailures, 0)
}

// RecordEstimate counts one successful engine computation
func (m *Metrics) RecordEstimate() {
	atomic.AddInt64(&m.estimatesComputed, 1)
}

func (m *Metrics) recordLLMCall(duration time.Duration, err error) {
	atomic.AddInt64(&m.llmCalls, 1)
	atomic.AddInt64(&m.llmLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.llmErrors, 1)
	}
}

func (m *Metrics) recordCache(hit bool) {
	if hit {
		atomic.AddInt64(&m.cacheHits, 1)
		return
	}
	atomic.AddInt64(&m.cacheMisses, 1)
}

func (m *Metrics) recordNarrativeFailure() {
	atomic.AddInt64(&m.narrativeFailures, 1)
}
