// Package scratch provides the reusable device-side output buffers for the
// threshold-and-cluster passes.
//
// # Concurrency Model
//
// Buffers assumes a single logical owner: exactly one invocation may be
// in flight at a time. Ensure, Reset and the row accessors must not be called
// concurrently. This mirrors the reuse-in-place buffer model of the engine.
//
// # Memory Management
//
// Capacity is grow-only: Ensure reallocates when the requested geometry does
// not fit and otherwise reuses the existing arrays. Memory is held until
// Reset or process teardown, a deliberate reuse-over-reallocate policy.
package scratch

import (
	"fmt"

	"github.com/xangma/peakgo/internal/mem"
	"github.com/xangma/peakgo/internal/resource"
)

// bytesPerSlot is the footprint of one candidate slot across both arrays
// (complex64 value + int32 index).
const bytesPerSlot = 12

// Stats tracks scratch buffer usage.
type Stats struct {
	BytesReserved uint64 // Current: backing array footprint
	Grows         uint64 // Historical: reallocation count
	EnsureCalls   uint64 // Historical: total Ensure invocations
}

// Buffers owns the two scratch arrays written by the reduction pass and read
// by the suppression pass: candidate values and candidate sample indices,
// laid out row-major as batchSize rows of blockMem slots.
type Buffers struct {
	values  []complex64
	indices []int32

	// Active geometry of the most recent Ensure. The backing arrays may be
	// larger; rows are addressed with the active blockMem stride.
	batchSize int
	blockMem  int

	ctl   *resource.Controller
	stats Stats
}

// New creates empty scratch buffers. ctl may be nil to disable memory limits.
func New(ctl *resource.Controller) *Buffers {
	return &Buffers{ctl: ctl}
}

// Ensure makes the buffers large enough for batchSize rows of blockMem slots
// each, growing (never shrinking) the backing arrays when needed. It sets the
// active geometry used by the row accessors.
func (b *Buffers) Ensure(batchSize, blockMem int) error {
	if batchSize <= 0 || blockMem <= 0 {
		return fmt.Errorf("scratch: invalid geometry %dx%d", batchSize, blockMem)
	}

	b.stats.EnsureCalls++

	need := batchSize * blockMem
	if need > len(b.values) {
		newBytes := int64(need * bytesPerSlot)
		oldBytes := int64(len(b.values) * bytesPerSlot)

		// Acquire the delta before touching the arrays so a denied grow
		// leaves the previous buffers fully usable.
		if err := b.ctl.AcquireMemory(newBytes - oldBytes); err != nil {
			return err
		}

		b.values = mem.AllocAlignedComplex64(need)
		b.indices = mem.AllocAlignedInt32(need)
		b.stats.Grows++
		b.stats.BytesReserved = uint64(newBytes)
	}

	b.batchSize = batchSize
	b.blockMem = blockMem

	return nil
}

// ValuesRow returns the candidate-value slots for one series.
func (b *Buffers) ValuesRow(series int) []complex64 {
	off := series * b.blockMem
	return b.values[off : off+b.blockMem]
}

// IndicesRow returns the candidate-index slots for one series.
func (b *Buffers) IndicesRow(series int) []int32 {
	off := series * b.blockMem
	return b.indices[off : off+b.blockMem]
}

// BatchSize returns the active number of rows.
func (b *Buffers) BatchSize() int { return b.batchSize }

// BlockMem returns the active per-series slot count (row stride).
func (b *Buffers) BlockMem() int { return b.blockMem }

// Reset releases the backing arrays and returns their budget to the
// controller. The buffers remain usable; the next Ensure reallocates.
//
// Do NOT call Reset while an invocation is in flight.
func (b *Buffers) Reset() {
	if b.values == nil {
		return
	}

	b.ctl.ReleaseMemory(int64(len(b.values) * bytesPerSlot))

	b.values = nil
	b.indices = nil
	b.batchSize = 0
	b.blockMem = 0
	b.stats.BytesReserved = 0
}

// Stats returns the current scratch statistics.
func (b *Buffers) Stats() Stats { return b.stats }

func (b *Buffers) String() string {
	return fmt.Sprintf("Buffers{geometry: %dx%d, reserved: %.2f KB, grows: %d}",
		b.batchSize, b.blockMem,
		float64(b.stats.BytesReserved)/1024,
		b.stats.Grows,
	)
}
