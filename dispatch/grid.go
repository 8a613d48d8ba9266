package dispatch

import (
	"context"
	"fmt"
	"sync"
)

// Grid launches independent blocks across a worker pool.
//
// Run has dispatch-then-barrier semantics: every block of one Run call may
// execute concurrently with every other, and Run returns only once all
// blocks have committed their writes. Two consecutive Run calls therefore
// give the second pass a fully-written view of the first pass's output.
type Grid struct {
	pool *WorkerPool
}

// NewGrid creates a grid launcher over pool.
func NewGrid(pool *WorkerPool) *Grid {
	return &Grid{pool: pool}
}

// Run executes fn for every block index in [0, blocks) and waits for all of
// them to finish.
//
// A panicking block does not abort the launch; the remaining blocks run to
// completion (the barrier must hold even on failure) and the first panic is
// returned as an error. Callers must treat that error as fatal: the output
// buffers are in an undefined state.
func (g *Grid) Run(blocks int, fn func(block int)) error {
	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicErr  error
	)

	// A dispatched grid runs to completion; there is no cancellation path.
	ctx := context.Background()

	for b := 0; b < blocks; b++ {
		b := b
		wg.Add(1)

		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicErr = fmt.Errorf("dispatch: block %d panicked: %v", b, r)
					})
				}
			}()
			fn(b)
		}

		if err := g.pool.Submit(ctx, task); err != nil {
			wg.Done()
			// Wait out the blocks already in flight before reporting.
			wg.Wait()
			return err
		}
	}

	wg.Wait()

	return panicErr
}
