package kernel

import (
	"sync"

	"github.com/xangma/peakgo/internal/math32"
)

const (
	// NoCandidate is the sentinel index written for a window whose maximum
	// stayed at or below the threshold.
	NoCandidate = -1

	// laneGroup is the fixed width of the second reduction level. Window
	// lengths below this are rejected at planning time.
	laneGroup = 32

	// maxLanes bounds the lane count of any launch configuration.
	maxLanes = 1024
)

// laneState is the block-shared storage of one Reduce call: one slot per
// lane for the first level, plus the fixed 32-wide storage of the second.
// States are pooled at full size and sliced down to the active lane count.
type laneState struct {
	val []complex64
	loc []int

	groupVal [laneGroup]float32
	groupIdx [laneGroup]int
}

var laneStatePool = sync.Pool{
	New: func() interface{} {
		return &laneState{
			val: make([]complex64, maxLanes),
			loc: make([]int, maxLanes),
		}
	},
}

// Reduce runs the first pass for window windowIdx of one series.
//
// row is the series' samples, outv/outl the series' scratch row. The window
// covers samples [windowIdx*window, windowIdx*window+window), clipped to the
// series length. Exactly one slot of outv/outl is written.
//
// lanes is the number of reduction lanes and must be a multiple of 32, at
// most maxLanes. thresholdSq is the pre-squared threshold.
func Reduce(row []complex64, window, windowIdx, lanes int, thresholdSq float32, outv []complex64, outl []int32) {
	ls := laneStatePool.Get().(*laneState)
	defer laneStatePool.Put(ls)

	s := windowIdx * window
	e := s + window
	if e > len(row) {
		e = len(row)
	}

	// Level 0: every lane scans a strided subset of the window, tracking
	// its locally best sample, then commits it to the shared slots. The
	// commit is the barrier point of the hardware formulation; lanes run
	// sequentially here so visibility is implicit.
	val := ls.val[:lanes]
	loc := ls.loc[:lanes]
	for t := 0; t < lanes; t++ {
		var mv complex64
		ml := NoCandidate
		for i := s + t; i < e; i += lanes {
			if math32.MagSq(row[i]) > math32.MagSq(mv) {
				mv = row[i]
				ml = i
			}
		}
		val[t] = mv
		loc[t] = ml
	}

	// Level 1: a fixed 32-wide lane group reads across the shared slots in
	// strides, collapsing lanes-many candidates to 32. Each group lane
	// starts from its own level-0 result.
	for t := 0; t < laneGroup; t++ {
		tl := t
		best := math32.MagSq(val[t])
		for i := t + laneGroup; i < lanes; i += laneGroup {
			if v := math32.MagSq(val[i]); v > best {
				best = v
				tl = i
			}
		}
		ls.groupVal[t] = best
		ls.groupIdx[t] = tl
	}

	// Manual halving reduction 16 -> 8 -> 4 -> 2 -> 1 over the group.
	for stride := laneGroup / 2; stride >= 1; stride /= 2 {
		for t := 0; t < stride; t++ {
			if ls.groupVal[t] < ls.groupVal[t+stride] {
				ls.groupVal[t] = ls.groupVal[t+stride]
				ls.groupIdx[t] = ls.groupIdx[t+stride]
			}
		}
	}

	if ls.groupVal[0] > thresholdSq {
		tl := ls.groupIdx[0]
		outv[windowIdx] = val[tl]
		outl[windowIdx] = int32(loc[tl] % len(row))
	} else {
		outl[windowIdx] = NoCandidate
	}
}
