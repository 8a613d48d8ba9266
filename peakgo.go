package peakgo

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xangma/peakgo/dispatch"
	"github.com/xangma/peakgo/internal/mem"
	"github.com/xangma/peakgo/internal/resource"
	"github.com/xangma/peakgo/internal/scratch"
	"github.com/xangma/peakgo/kernel"
	"github.com/xangma/peakgo/plan"
)

// Engine runs the threshold-and-cluster passes over one series batch.
//
// The engine borrows the batch for its lifetime and owns everything else it
// needs: the worker pool, the grow-only scratch buffers and the launch-plan
// cache. It supports exactly one in-flight invocation; see the package
// documentation for the concurrency contract.
type Engine struct {
	batch    *SeriesBatch
	blockMem int

	logger  *Logger
	metrics MetricsCollector

	pool    *dispatch.WorkerPool
	grid    *dispatch.Grid
	buffers *scratch.Buffers
	plans   plan.Cache

	closed atomic.Bool

	invocations atomic.Int64
	candidates  atomic.Int64
}

// New creates an engine over batch.
//
// The caller must keep batch valid and unchanged until Close; results are
// computed from whatever the batch holds at invocation time.
func New(batch *SeriesBatch, opts ...Option) (*Engine, error) {
	if batch == nil {
		return nil, fmt.Errorf("peakgo: nil batch")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var ctl *resource.Controller
	if o.memoryLimit > 0 {
		ctl = resource.NewController(resource.Config{MemoryLimitBytes: o.memoryLimit})
	}

	pool := dispatch.NewWorkerPool(o.workers)

	e := &Engine{
		batch:    batch,
		blockMem: o.blockMem,
		logger:   o.logger,
		metrics:  o.metrics,
		pool:     pool,
		grid:     dispatch.NewGrid(pool),
		buffers:  scratch.New(ctl),
	}

	e.logger.WithBatchSize(batch.BatchSize()).Debug("engine created",
		"series_length", batch.SeriesLength(),
		"block_mem", o.blockMem,
		"workers", pool.NumWorkers(),
	)

	return e, nil
}

// ThresholdAndCluster scans every series of the batch and returns, per
// series, the surviving candidate peaks.
//
// thresholds carries one magnitude threshold per series, aligned with the
// batch rows; it is squared internally so candidates are compared without a
// square root per sample. window is the clustering window in samples.
//
// Configuration errors (window below the minimum, too many windows) and
// shape errors surface before any block is dispatched; no partial work
// occurs. A *ErrDevice is fatal for this engine's scratch contents.
func (e *Engine) ThresholdAndCluster(thresholds []float32, window int) ([]Result, error) {
	start := time.Now()

	results, candidates, err := e.thresholdAndCluster(thresholds, window)

	duration := time.Since(start)
	e.metrics.RecordInvocation(e.batch.BatchSize(), window, candidates, duration, err)
	e.logger.LogInvocation(window, candidates, duration, err)

	return results, err
}

func (e *Engine) thresholdAndCluster(thresholds []float32, window int) ([]Result, int, error) {
	if e.closed.Load() {
		return nil, 0, ErrEngineClosed
	}

	batchSize := e.batch.BatchSize()
	if len(thresholds) != batchSize {
		return nil, 0, &ErrShapeMismatch{Expected: batchSize, Actual: len(thresholds)}
	}

	cfg, err := e.plans.Derive(e.batch.SeriesLength(), window, e.blockMem, batchSize)
	if err != nil {
		return nil, 0, translateError(err)
	}

	grows := e.buffers.Stats().Grows
	if err := e.buffers.Ensure(batchSize, cfg.BlockMem); err != nil {
		return nil, 0, translateError(err)
	}
	if st := e.buffers.Stats(); st.Grows > grows {
		e.metrics.RecordScratchGrow(st.BytesReserved)
		e.logger.LogScratchGrow(st.BytesReserved)
	}

	thresholdsSq := mem.AllocAlignedFloat32(batchSize)
	for i, t := range thresholds {
		thresholdsSq[i] = t * t
	}

	// Pass 1: one block per (series, window) pair. Blocks only touch their
	// own scratch slot, so the whole grid is dispatched at once; Run's
	// barrier stands in for the device-wide synchronization between passes.
	err = e.grid.Run(batchSize*cfg.Blocks, func(block int) {
		series := block / cfg.Blocks
		w := block % cfg.Blocks
		kernel.Reduce(
			e.batch.Row(series),
			cfg.Window, w, cfg.Lanes,
			thresholdsSq[series],
			e.buffers.ValuesRow(series),
			e.buffers.IndicesRow(series),
		)
	})
	if err != nil {
		if errors.Is(err, dispatch.ErrPoolClosed) {
			return nil, 0, ErrEngineClosed
		}
		return nil, 0, &ErrDevice{cause: err}
	}

	// Pass 2 and extraction: series are independent here, so suppression
	// and result collection fan out per series.
	results := make([]Result, batchSize)
	var total atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(e.pool.NumWorkers())

	for s := 0; s < batchSize; s++ {
		s := s
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("series %d: %v", s, r)
				}
			}()

			outv := e.buffers.ValuesRow(s)
			outl := e.buffers.IndicesRow(s)

			kernel.Suppress(outv, outl, cfg.Blocks)

			var res Result
			for w := 0; w < cfg.Blocks; w++ {
				if outl[w] != kernel.NoCandidate {
					res.Values = append(res.Values, outv[w])
					res.Indices = append(res.Indices, outl[w])
				}
			}

			results[s] = res
			total.Add(int64(len(res.Indices)))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, &ErrDevice{cause: err}
	}

	candidates := int(total.Load())
	e.invocations.Add(1)
	e.candidates.Add(total.Load())

	return results, candidates, nil
}

// ResetScratch releases the engine's scratch buffers and returns their
// budget to the memory limit, if one is configured. The next invocation
// reallocates. Must not be called while an invocation is in flight.
func (e *Engine) ResetScratch() {
	e.buffers.Reset()
}

// Stats reports engine counters and scratch usage.
type Stats struct {
	Invocations          int64
	CandidatesEmitted    int64
	ScratchBytesReserved uint64
	ScratchGrows         uint64
	PlanCacheSize        int
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	st := e.buffers.Stats()
	return Stats{
		Invocations:          e.invocations.Load(),
		CandidatesEmitted:    e.candidates.Load(),
		ScratchBytesReserved: st.BytesReserved,
		ScratchGrows:         st.Grows,
		PlanCacheSize:        e.plans.Len(),
	}
}

func (e *Engine) String() string {
	st := e.Stats()
	return fmt.Sprintf("Engine{batch: %dx%d, invocations: %d, candidates: %d, scratch: %.2f KB}",
		e.batch.BatchSize(), e.batch.SeriesLength(),
		st.Invocations, st.CandidatesEmitted,
		float64(st.ScratchBytesReserved)/1024,
	)
}

// Close shuts down the worker pool and releases scratch memory. Close is
// idempotent. Invocations after Close return ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.pool.Close()
	e.buffers.Reset()

	e.logger.Debug("engine closed",
		"invocations", e.invocations.Load(),
		"candidates", e.candidates.Load(),
	)

	return nil
}
