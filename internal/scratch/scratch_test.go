package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xangma/peakgo/internal/resource"
)

func TestBuffers_GrowOnly(t *testing.T) {
	b := New(nil)

	require.NoError(t, b.Ensure(2, 16))
	assert.Equal(t, 2, b.BatchSize())
	assert.Equal(t, 16, b.BlockMem())

	first := b.Stats()
	assert.Equal(t, uint64(1), first.Grows)
	assert.Equal(t, uint64(2*16*bytesPerSlot), first.BytesReserved)

	// Smaller geometry reuses the existing arrays.
	require.NoError(t, b.Ensure(1, 8))
	assert.Equal(t, uint64(1), b.Stats().Grows)
	assert.Equal(t, first.BytesReserved, b.Stats().BytesReserved)
	assert.Equal(t, 1, b.BatchSize())
	assert.Equal(t, 8, b.BlockMem())

	// Larger geometry grows.
	require.NoError(t, b.Ensure(4, 32))
	assert.Equal(t, uint64(2), b.Stats().Grows)
	assert.Equal(t, uint64(4*32*bytesPerSlot), b.Stats().BytesReserved)
}

func TestBuffers_Rows(t *testing.T) {
	b := New(nil)
	require.NoError(t, b.Ensure(3, 4))

	for s := 0; s < 3; s++ {
		row := b.IndicesRow(s)
		require.Len(t, row, 4)
		for i := range row {
			row[i] = int32(s*100 + i)
		}
	}

	// Rows are disjoint views over the same backing array.
	assert.Equal(t, int32(0), b.IndicesRow(0)[0])
	assert.Equal(t, int32(103), b.IndicesRow(1)[3])
	assert.Equal(t, int32(200), b.IndicesRow(2)[0])

	require.Len(t, b.ValuesRow(1), 4)
}

func TestBuffers_MemoryLimit(t *testing.T) {
	ctl := resource.NewController(resource.Config{MemoryLimitBytes: 100 * bytesPerSlot})
	b := New(ctl)

	require.NoError(t, b.Ensure(10, 10))
	assert.Equal(t, int64(100*bytesPerSlot), ctl.MemoryUsage())

	// A grow beyond the budget fails and leaves the old buffers intact.
	err := b.Ensure(20, 10)
	require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, 10, b.BatchSize())
	assert.Len(t, b.ValuesRow(9), 10)

	b.Reset()
	assert.Equal(t, int64(0), ctl.MemoryUsage())

	// Budget is available again after reset.
	require.NoError(t, b.Ensure(10, 10))
}

func TestBuffers_Reset(t *testing.T) {
	b := New(nil)
	require.NoError(t, b.Ensure(2, 8))

	b.Reset()
	assert.Equal(t, 0, b.BatchSize())
	assert.Equal(t, uint64(0), b.Stats().BytesReserved)

	// Reset on empty buffers is a no-op.
	b.Reset()

	require.NoError(t, b.Ensure(2, 8))
	assert.Equal(t, uint64(2), b.Stats().Grows)
}

func TestBuffers_InvalidGeometry(t *testing.T) {
	b := New(nil)
	assert.Error(t, b.Ensure(0, 8))
	assert.Error(t, b.Ensure(2, -1))
}
