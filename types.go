package peakgo

import (
	"fmt"
)

// SeriesBatch is a dense batch of independent complex-valued series, laid
// out row-major as batchSize rows of seriesLength samples.
//
// The batch is borrowed, not owned: the engine reads it during invocations
// and never mutates it. The caller must keep the backing slice valid and
// unchanged for the lifetime of any engine constructed over it.
type SeriesBatch struct {
	data         []complex64
	batchSize    int
	seriesLength int
}

// NewSeriesBatch wraps data as a batchSize x seriesLength batch.
// len(data) must equal batchSize*seriesLength.
func NewSeriesBatch(data []complex64, batchSize, seriesLength int) (*SeriesBatch, error) {
	if batchSize <= 0 || seriesLength <= 0 {
		return nil, fmt.Errorf("peakgo: invalid batch geometry %dx%d", batchSize, seriesLength)
	}
	if len(data) != batchSize*seriesLength {
		return nil, &ErrShapeMismatch{Expected: batchSize * seriesLength, Actual: len(data)}
	}

	return &SeriesBatch{
		data:         data,
		batchSize:    batchSize,
		seriesLength: seriesLength,
	}, nil
}

// Row returns the samples of one series.
func (b *SeriesBatch) Row(series int) []complex64 {
	off := series * b.seriesLength
	return b.data[off : off+b.seriesLength]
}

// BatchSize returns the number of series in the batch.
func (b *SeriesBatch) BatchSize() int { return b.batchSize }

// SeriesLength returns the samples per series.
func (b *SeriesBatch) SeriesLength() int { return b.seriesLength }

// Result holds the surviving candidates of one series: parallel sequences of
// complex sample values and their sample indices within the series. The
// ordering within a result carries no meaning.
type Result struct {
	Values  []complex64
	Indices []int32
}

// Len returns the number of surviving candidates.
func (r Result) Len() int { return len(r.Indices) }
