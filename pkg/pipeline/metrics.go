package pipeline

import (
	"sync"
	"time"
)

// Metrics is a snapshot of pipeline counters and stage latencies.
type Metrics struct {
	Requests int
	Failures int

	// FailuresByStage counts failed runs per stage.
	FailuresByStage map[Stage]int

	// AvgStageLatency is the mean duration per stage over completed
	// observations.
	AvgStageLatency map[Stage]time.Duration

	// AvgTotalLatency is the mean end-to-end duration of successful runs.
	AvgTotalLatency time.Duration
}

// Collector accumulates pipeline metrics. Goroutine-safe; one collector
// serves all concurrent requests.
type Collector struct {
	mu sync.Mutex

	requests int
	failures int

	failuresByStage map[Stage]int
	stageTotals     map[Stage]time.Duration
	stageCounts     map[Stage]int

	totalLatency time.Duration
	totalCount   int
}

// NewCollector creates an empty metrics collector.
func NewCollector() *Collector {
	return &Collector{
		failuresByStage: make(map[Stage]int),
		stageTotals:     make(map[Stage]time.Duration),
		stageCounts:     make(map[Stage]int),
	}
}

// ObserveRequest counts an inbound request.
func (c *Collector) ObserveRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
}

// ObserveStage records one stage duration.
func (c *Collector) ObserveStage(stage Stage, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stageTotals[stage] += d
	c.stageCounts[stage]++
}

// ObserveSuccess records a completed run's total latency.
func (c *Collector) ObserveSuccess(total time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalLatency += total
	c.totalCount++
}

// ObserveFailure records a failed run at the given stage.
func (c *Collector) ObserveFailure(stage Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	c.failuresByStage[stage]++
}

// Snapshot returns current metrics.
func (c *Collector) Snapshot() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{
		Requests:        c.requests,
		Failures:        c.failures,
		FailuresByStage: make(map[Stage]int, len(c.failuresByStage)),
		AvgStageLatency: make(map[Stage]time.Duration, len(c.stageTotals)),
	}
	for stage, n := range c.failuresByStage {
		m.FailuresByStage[stage] = n
	}
	for stage, total := range c.stageTotals {
		if n := c.stageCounts[stage]; n > 0 {
			m.AvgStageLatency[stage] = total / time.Duration(n)
		}
	}
	if c.totalCount > 0 {
		m.AvgTotalLatency = c.totalLatency / time.Duration(c.totalCount)
	}
	return m
}
