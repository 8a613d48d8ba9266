// Package plan derives and caches launch configurations for the
// threshold-and-cluster passes.
//
// A configuration maps (series length, window) onto a parallel-grid shape:
// how many reduction lanes work one window, how many windows one series
// spans, and how many scratch slots each series row reserves. Derivation is
// deterministic, so results are cached by the full input tuple.
package plan

import (
	"fmt"
	"sync"
)

const (
	// MinWindow is the smallest supported window length. The reduction
	// scheme assumes at least one full 32-wide lane group.
	MinWindow = 32

	// MaxBlocks is the hard cap on windows per series, a parallel-grid
	// width limit. Callers with longer series must split them first.
	MaxBlocks = 1024

	// DefaultBlockMem is the default per-series scratch capacity in
	// windows. It equals MaxBlocks so one configuration can be reused
	// across repeated calls regardless of the window actually chosen.
	DefaultBlockMem = 1024
)

// ErrWindowTooSmall indicates a window below the minimum reduction width.
type ErrWindowTooSmall struct {
	Window int
}

func (e *ErrWindowTooSmall) Error() string {
	return fmt.Sprintf("window of %d samples is smaller than the minimum of %d", e.Window, MinWindow)
}

// ErrTooManyBlocks indicates a series that spans more windows than the
// parallel grid supports.
type ErrTooManyBlocks struct {
	Blocks int
}

func (e *ErrTooManyBlocks) Error() string {
	return fmt.Sprintf("series spans %d windows, more than %d not supported", e.Blocks, MaxBlocks)
}

// ErrBlockMemTooSmall indicates a block-memory override smaller than the
// number of windows the configuration needs.
type ErrBlockMemTooSmall struct {
	BlockMem int
	Blocks   int
}

func (e *ErrBlockMemTooSmall) Error() string {
	return fmt.Sprintf("block memory of %d slots cannot hold %d windows", e.BlockMem, e.Blocks)
}

// Config is a validated launch configuration.
type Config struct {
	SeriesLength int // samples per series
	Window       int // samples per window
	Lanes        int // reduction lanes per window
	Blocks       int // windows per series
	BlockMem     int // scratch slots per series row
	BatchSize    int // series per batch
}

// Derive computes the launch configuration for one series geometry.
//
// The lane count scales with the window so that per-window latency stays
// logarithmic in lane count rather than linear in window length.
func Derive(seriesLength, window, blockMem, batchSize int) (Config, error) {
	if window < MinWindow {
		return Config{}, &ErrWindowTooSmall{Window: window}
	}

	var lanes int
	switch {
	case window <= 4096:
		lanes = 128
	case window <= 16384:
		lanes = 256
	case window <= 32768:
		lanes = 512
	default:
		lanes = 1024
	}

	blocks := (seriesLength + window - 1) / window

	if blocks > MaxBlocks {
		return Config{}, &ErrTooManyBlocks{Blocks: blocks}
	}

	if blockMem <= 0 {
		blockMem = blocks
	}
	if blockMem < blocks {
		return Config{}, &ErrBlockMemTooSmall{BlockMem: blockMem, Blocks: blocks}
	}

	return Config{
		SeriesLength: seriesLength,
		Window:       window,
		Lanes:        lanes,
		Blocks:       blocks,
		BlockMem:     blockMem,
		BatchSize:    batchSize,
	}, nil
}

type cacheKey struct {
	seriesLength int
	window       int
	blockMem     int
	batchSize    int
}

// Cache memoizes Derive results by input tuple. The zero value is ready to
// use. Cached errors are returned as-is on repeat lookups.
type Cache struct {
	mu sync.RWMutex
	m  map[cacheKey]cacheEntry
}

type cacheEntry struct {
	cfg Config
	err error
}

// Derive returns the cached configuration for the tuple, deriving and
// storing it on first use.
func (c *Cache) Derive(seriesLength, window, blockMem, batchSize int) (Config, error) {
	key := cacheKey{seriesLength, window, blockMem, batchSize}

	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if ok {
		return e.cfg, e.err
	}

	cfg, err := Derive(seriesLength, window, blockMem, batchSize)

	c.mu.Lock()
	if c.m == nil {
		c.m = make(map[cacheKey]cacheEntry)
	}
	c.m[key] = cacheEntry{cfg: cfg, err: err}
	c.mu.Unlock()

	return cfg, err
}

// Len returns the number of cached tuples.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
