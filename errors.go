package peakgo

import (
	"errors"
	"fmt"

	"github.com/xangma/peakgo/internal/resource"
	"github.com/xangma/peakgo/plan"
)

var (
	// ErrEngineClosed is returned when an operation is invoked on a closed engine.
	ErrEngineClosed = errors.New("engine closed")

	// ErrMemoryLimitExceeded is returned when growing the scratch buffers
	// would exceed the configured memory limit. No partial work occurs.
	ErrMemoryLimitExceeded = errors.New("scratch memory limit exceeded")
)

// ErrShapeMismatch indicates a threshold vector whose length does not match
// the batch size, or a sample slice whose length does not match the batch
// geometry.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrWindowTooSmall indicates a window below the minimum reduction width.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrWindowTooSmall struct {
	Window int
	cause  error
}

func (e *ErrWindowTooSmall) Error() string {
	return fmt.Sprintf("invalid window: %d", e.Window)
}

func (e *ErrWindowTooSmall) Unwrap() error { return e.cause }

// ErrTooManyWindows indicates a series spanning more windows than the
// parallel grid supports. Callers must split the series before invoking.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrTooManyWindows struct {
	Windows int
	cause   error
}

func (e *ErrTooManyWindows) Error() string {
	return fmt.Sprintf("too many windows: %d", e.Windows)
}

func (e *ErrTooManyWindows) Unwrap() error { return e.cause }

// ErrDevice indicates an unrecoverable failure during a dispatched pass.
// The scratch buffers are in an undefined state afterwards; the engine does
// not retry and offers no partial results.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDevice struct {
	cause error
}

func (e *ErrDevice) Error() string {
	return fmt.Sprintf("device failure: %v", e.cause)
}

func (e *ErrDevice) Unwrap() error { return e.cause }

// translateError maps internal and planning errors onto the public contract.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var wts *plan.ErrWindowTooSmall
	if errors.As(err, &wts) {
		return &ErrWindowTooSmall{Window: wts.Window, cause: err}
	}
	var tmb *plan.ErrTooManyBlocks
	if errors.As(err, &tmb) {
		return &ErrTooManyWindows{Windows: tmb.Blocks, cause: err}
	}
	var bms *plan.ErrBlockMemTooSmall
	if errors.As(err, &bms) {
		// A block-memory override that cannot hold the derived window
		// count is a window-count problem from the caller's view.
		return &ErrTooManyWindows{Windows: bms.Blocks, cause: err}
	}

	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
