package kernel

import (
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/xangma/peakgo/internal/math32"
)

// suppressState holds the snapshot one Suppress call works from: the squared
// magnitudes of every window slot and the validity mask of the incoming
// candidates. Pooled because blocks is bounded by maxLanes.
type suppressState struct {
	vals  []float32
	valid *bitset.BitSet
}

var suppressStatePool = sync.Pool{
	New: func() interface{} {
		return &suppressState{
			vals:  make([]float32, maxLanes),
			valid: bitset.New(maxLanes),
		}
	},
}

// Suppress runs the second pass over one series' candidate slots.
//
// outv/outl are the series' scratch row as written by Reduce; blocks is the
// number of live window slots. A valid candidate is invalidated (its index
// set to NoCandidate) when either immediate neighbor is valid and holds a
// strictly larger squared magnitude. Invalid neighbors never suppress.
//
// All comparisons read a snapshot taken before any slot is invalidated, so
// the pass is order-independent and deliberately not iterated: suppression
// does not cascade through a chain of windows.
func Suppress(outv []complex64, outl []int32, blocks int) {
	ss := suppressStatePool.Get().(*suppressState)
	defer suppressStatePool.Put(ss)

	vals := ss.vals[:blocks]
	valid := ss.valid
	valid.ClearAll()

	// Snapshot. Magnitudes of invalid slots are computed from whatever the
	// slot last held but are masked out below.
	math32.MagSqInto(vals, outv[:blocks])
	for i := 0; i < blocks; i++ {
		if outl[i] != NoCandidate {
			valid.Set(uint(i))
		}
	}

	for i := 0; i < blocks; i++ {
		if !valid.Test(uint(i)) {
			continue
		}

		// Check right
		if i < blocks-1 && valid.Test(uint(i+1)) && vals[i+1] > vals[i] {
			outl[i] = NoCandidate
			continue
		}

		// Check left
		if i > 0 && valid.Test(uint(i-1)) && vals[i-1] > vals[i] {
			outl[i] = NoCandidate
		}
	}
}
