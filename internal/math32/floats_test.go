package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagSq(t *testing.T) {
	assert.Equal(t, float32(25), MagSq(complex(3, 4)))
	assert.Equal(t, float32(0), MagSq(complex(0, 0)))
	assert.Equal(t, float32(2), MagSq(complex(-1, 1)))
}

func TestMagSqInto(t *testing.T) {
	src := make([]complex64, 35) // not a multiple of 4, exercises the tail
	for i := range src {
		src[i] = complex(float32(i), -float32(i))
	}

	dst := make([]float32, len(src))
	MagSqInto(dst, src)

	for i := range src {
		assert.Equal(t, float32(2*i*i), dst[i], "index %d", i)
	}
}

func TestMagSqIntoImplsAgree(t *testing.T) {
	src := []complex64{
		complex(1, 2), complex(-3, 0.5), complex(0, 0),
		complex(7, -7), complex(0.1, 0.2),
	}

	want := make([]float32, len(src))
	magSqIntoGeneric(want, src)

	got := make([]float32, len(src))
	magSqIntoUnrolled(got, src)

	assert.Equal(t, want, got)
}

func TestArgMaxMagSq(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		i, v := ArgMaxMagSq(nil)
		assert.Equal(t, -1, i)
		assert.Zero(t, v)
	})

	t.Run("SinglePeak", func(t *testing.T) {
		zs := []complex64{complex(1, 0), complex(0, 5), complex(2, 0)}
		i, v := ArgMaxMagSq(zs)
		require.Equal(t, 1, i)
		assert.Equal(t, float32(25), v)
	})

	t.Run("TieKeepsFirst", func(t *testing.T) {
		zs := []complex64{complex(2, 0), complex(0, 2)}
		i, _ := ArgMaxMagSq(zs)
		assert.Equal(t, 0, i)
	})
}
