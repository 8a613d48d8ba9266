package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	// Test with limit
	c := NewController(Config{MemoryLimitBytes: 100})

	// Acquire 50
	err := c.AcquireMemory(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire another 50 (at limit)
	err = c.AcquireMemory(50)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.MemoryUsage())

	// Over limit
	err = c.AcquireMemory(1)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	// Release frees budget
	c.ReleaseMemory(100)
	assert.Equal(t, int64(0), c.MemoryUsage())

	err = c.AcquireMemory(100)
	assert.NoError(t, err)
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})

	err := c.AcquireMemory(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_ZeroAndNegative(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})

	assert.NoError(t, c.AcquireMemory(0))
	assert.NoError(t, c.AcquireMemory(-5))
	assert.Equal(t, int64(0), c.MemoryUsage())
}
