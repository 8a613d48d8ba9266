// Package prom provides a Prometheus-backed peakgo.MetricsCollector.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xangma/peakgo"
)

// Collector exports engine metrics to a Prometheus registry.
type Collector struct {
	invocationsTotal   prometheus.Counter
	invocationErrors   prometheus.Counter
	invocationDuration prometheus.Histogram
	candidatesTotal    prometheus.Counter
	candidatesPerCall  prometheus.Histogram
	batchSize          prometheus.Histogram
	scratchBytes       prometheus.Gauge
	scratchGrowsTotal  prometheus.Counter
}

var _ peakgo.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// If reg is nil, the default registerer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		invocationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "peakgo_invocations_total",
			Help: "Total number of threshold-and-cluster invocations",
		}),
		invocationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "peakgo_invocation_errors_total",
			Help: "Total number of failed invocations",
		}),
		invocationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peakgo_invocation_duration_seconds",
			Help:    "Duration of threshold-and-cluster invocations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
		candidatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "peakgo_candidates_total",
			Help: "Total number of surviving candidates emitted",
		}),
		candidatesPerCall: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peakgo_candidates_per_invocation",
			Help:    "Surviving candidates per invocation across the batch",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000},
		}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peakgo_batch_size",
			Help:    "Number of series per invocation",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		scratchBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "peakgo_scratch_bytes",
			Help: "Current scratch buffer footprint",
		}),
		scratchGrowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "peakgo_scratch_grows_total",
			Help: "Total number of scratch buffer reallocations",
		}),
	}
}

// RecordInvocation implements peakgo.MetricsCollector.
func (c *Collector) RecordInvocation(batchSize, window, candidates int, duration time.Duration, err error) {
	c.invocationsTotal.Inc()
	c.invocationDuration.Observe(duration.Seconds())
	c.batchSize.Observe(float64(batchSize))

	if err != nil {
		c.invocationErrors.Inc()
		return
	}

	c.candidatesTotal.Add(float64(candidates))
	c.candidatesPerCall.Observe(float64(candidates))
}

// RecordScratchGrow implements peakgo.MetricsCollector.
func (c *Collector) RecordScratchGrow(bytesReserved uint64) {
	c.scratchGrowsTotal.Inc()
	c.scratchBytes.Set(float64(bytesReserved))
}
