package peakgo

import (
	"github.com/xangma/peakgo/plan"
)

type options struct {
	logger      *Logger
	metrics     MetricsCollector
	workers     int
	blockMem    int
	memoryLimit int64
}

func defaultOptions() options {
	return options{
		logger:   NewLogger(nil),
		metrics:  NoopMetricsCollector{},
		blockMem: plan.DefaultBlockMem,
	}
}

// Option configures engine construction.
type Option func(*options)

// WithLogger sets the structured logger. Passing nil restores the default
// text logger on stderr.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NewLogger(nil)
		}
		o.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector. Passing nil disables
// metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

// WithWorkers sets the number of pool workers executing blocks.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithBlockMemSize overrides the per-series scratch capacity in windows.
//
// The default reserves plan.DefaultBlockMem slots per series so that one
// configuration is reused across repeated invocations regardless of the
// window passed; the footprint is small either way. Passing a value <= 0
// sizes scratch to exactly the window count of each invocation instead,
// at the cost of one configuration (and possible reallocation) per distinct
// window.
func WithBlockMemSize(blockMem int) Option {
	return func(o *options) {
		if blockMem < 0 {
			blockMem = 0
		}
		o.blockMem = blockMem
	}
}

// WithMemoryLimit caps the bytes the engine may hold in scratch buffers.
// A grow beyond the limit fails with ErrMemoryLimitExceeded before any
// buffer is touched. Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		if bytes < 0 {
			bytes = 0
		}
		o.memoryLimit = bytes
	}
}
