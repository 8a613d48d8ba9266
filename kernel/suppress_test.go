package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// candidateRow builds a scratch row from per-window magnitudes. A negative
// magnitude marks the window invalid.
func candidateRow(mags []float64) ([]complex64, []int32) {
	outv := make([]complex64, len(mags))
	outl := make([]int32, len(mags))
	for i, m := range mags {
		if m < 0 {
			outl[i] = NoCandidate
			continue
		}
		outv[i] = complex(float32(m), 0)
		outl[i] = int32(i * 10)
	}
	return outv, outl
}

func survivors(outl []int32) []int {
	var s []int
	for i, l := range outl {
		if l != NoCandidate {
			s = append(s, i)
		}
	}
	return s
}

func TestSuppress_PeakKeepsOnlyHighest(t *testing.T) {
	// Strictly increasing then decreasing run: only the apex survives.
	outv, outl := candidateRow([]float64{1, 5, 2})
	Suppress(outv, outl, 3)
	assert.Equal(t, []int{1}, survivors(outl))
}

func TestSuppress_EqualAdjacentPeaksBothSurvive(t *testing.T) {
	outv, outl := candidateRow([]float64{4, 4})
	Suppress(outv, outl, 2)
	assert.Equal(t, []int{0, 1}, survivors(outl))
}

func TestSuppress_SinglePassDoesNotCascade(t *testing.T) {
	// Monotone descent: every window except the first has a strictly larger
	// left neighbor in the pre-pass snapshot, so only the first survives.
	// The decision for window 2 reads window 1's original value even though
	// window 1 is itself suppressed in the same pass.
	outv, outl := candidateRow([]float64{3, 2, 1})
	Suppress(outv, outl, 3)
	assert.Equal(t, []int{0}, survivors(outl))
}

func TestSuppress_InvalidNeighborNeverSuppresses(t *testing.T) {
	// The invalid middle window isolates the two peaks from each other.
	outv, outl := candidateRow([]float64{1, -1, 5})
	Suppress(outv, outl, 3)
	assert.Equal(t, []int{0, 2}, survivors(outl))
}

func TestSuppress_InvalidStaysInvalid(t *testing.T) {
	outv, outl := candidateRow([]float64{-1, 2, -1})
	Suppress(outv, outl, 3)
	assert.Equal(t, []int{1}, survivors(outl))
}

func TestSuppress_Boundaries(t *testing.T) {
	t.Run("FirstWindowHasNoLeftNeighbor", func(t *testing.T) {
		outv, outl := candidateRow([]float64{5, 1})
		Suppress(outv, outl, 2)
		assert.Equal(t, []int{0}, survivors(outl))
	})

	t.Run("LastWindowHasNoRightNeighbor", func(t *testing.T) {
		outv, outl := candidateRow([]float64{1, 5})
		Suppress(outv, outl, 2)
		assert.Equal(t, []int{1}, survivors(outl))
	})

	t.Run("SingleWindow", func(t *testing.T) {
		outv, outl := candidateRow([]float64{5})
		Suppress(outv, outl, 1)
		assert.Equal(t, []int{0}, survivors(outl))
	})
}

func TestSuppress_StaleValueSlotsAreIgnored(t *testing.T) {
	// Reduce leaves the value slot of a below-threshold window untouched,
	// so it can hold a large stale magnitude from a previous invocation.
	// The validity mask must win over the stale value.
	outv, outl := candidateRow([]float64{2, -1})
	outv[1] = complex(100, 0) // stale survivor from an earlier run

	Suppress(outv, outl, 2)
	require.Equal(t, []int{0}, survivors(outl))
}

func TestSuppress_PlateauInsideRun(t *testing.T) {
	// 2, 5, 5, 2: the equal middle windows suppress their smaller flanks
	// but not each other.
	outv, outl := candidateRow([]float64{2, 5, 5, 2})
	Suppress(outv, outl, 4)
	assert.Equal(t, []int{1, 2}, survivors(outl))
}
