package peakgo

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with peakgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithWindow adds a window-length field to the logger.
func (l *Logger) WithWindow(window int) *Logger {
	return &Logger{
		Logger: l.Logger.With("window", window),
	}
}

// WithBatchSize adds a batch-size field to the logger.
func (l *Logger) WithBatchSize(batchSize int) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch_size", batchSize),
	}
}

// LogInvocation logs one threshold-and-cluster invocation.
func (l *Logger) LogInvocation(window, candidates int, duration time.Duration, err error) {
	if err != nil {
		l.Error("threshold and cluster failed",
			"window", window,
			"duration", duration,
			"error", err,
		)
	} else {
		l.Debug("threshold and cluster completed",
			"window", window,
			"candidates", candidates,
			"duration", duration,
		)
	}
}

// LogScratchGrow logs a scratch buffer reallocation.
func (l *Logger) LogScratchGrow(bytesReserved uint64) {
	l.Debug("scratch buffers grown",
		"bytes_reserved", bytesReserved,
	)
}
