package peakgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the prom
// subpackage provides a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordInvocation is called after each threshold-and-cluster
	// invocation. candidates is the number of surviving candidates across
	// the whole batch, duration the wall time, err nil on success.
	RecordInvocation(batchSize, window, candidates int, duration time.Duration, err error)

	// RecordScratchGrow is called when the scratch buffers reallocate.
	// bytesReserved is the new total footprint.
	RecordScratchGrow(bytesReserved uint64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInvocation(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordScratchGrow(uint64)                             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InvocationCount      atomic.Int64
	InvocationErrors     atomic.Int64
	InvocationTotalNanos atomic.Int64
	CandidatesEmitted    atomic.Int64
	ScratchGrows         atomic.Int64
	ScratchBytesReserved atomic.Uint64
}

func (c *BasicMetricsCollector) RecordInvocation(batchSize, window, candidates int, duration time.Duration, err error) {
	c.InvocationCount.Add(1)
	c.InvocationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.InvocationErrors.Add(1)
		return
	}
	c.CandidatesEmitted.Add(int64(candidates))
}

func (c *BasicMetricsCollector) RecordScratchGrow(bytesReserved uint64) {
	c.ScratchGrows.Add(1)
	c.ScratchBytesReserved.Store(bytesReserved)
}
