package tabula

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with table-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTable adds the shape of an input table to the logger.
func (l *Logger) WithTable(rows, cols int) *Logger {
	return &Logger{
		Logger: l.Logger.With("in_rows", rows, "in_cols", cols),
	}
}

// WithOp adds an operation name to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogMerge logs a merge operation.
func (l *Logger) LogMerge(how How, leftRows, rightRows, rows int, err error) {
	if err != nil {
		l.Error("merge failed",
			"how", how,
			"left_rows", leftRows,
			"right_rows", rightRows,
			"error", err,
		)
	} else {
		l.Debug("merge completed",
			"how", how,
			"left_rows", leftRows,
			"right_rows", rightRows,
			"rows", rows,
		)
	}
}

// LogReshape logs a melt, pivot or concat operation. The input shape comes
// from WithTable.
func (l *Logger) LogReshape(op string, outRows int, err error) {
	if err != nil {
		l.Error(op+" failed", "error", err)
	} else {
		l.Debug(op+" completed", "rows", outRows)
	}
}

// LogSort logs a sort operation.
func (l *Logger) LogSort(keys int, err error) {
	if err != nil {
		l.Error("sort failed",
			"keys", keys,
			"error", err,
		)
	} else {
		l.Debug("sort completed", "keys", keys)
	}
}
