package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordInvocation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordInvocation(2, 4096, 7, 3*time.Millisecond, nil)
	c.RecordInvocation(2, 4096, 0, time.Millisecond, assert.AnError)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.invocationsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.invocationErrors))
	// Candidates from the failed invocation are not counted.
	assert.Equal(t, float64(7), testutil.ToFloat64(c.candidatesTotal))
}

func TestCollector_RecordScratchGrow(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordScratchGrow(4096)
	c.RecordScratchGrow(8192)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.scratchGrowsTotal))
	assert.Equal(t, float64(8192), testutil.ToFloat64(c.scratchBytes))
}

func TestCollector_RegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordInvocation(1, 64, 1, time.Millisecond, nil)
	c.RecordScratchGrow(128)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)
}

func TestCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() {
		NewCollector(reg)
	})
}
