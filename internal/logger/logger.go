package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	// default logger instance
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

// initializes the logger based on environment
func init() {
	defaultLogger = slog.New(newHandler(os.Stderr, os.Getenv("ENVIRONMENT")))
}

func newHandler(w io.Writer, env string) slog.Handler {
	if env == "production" {
		// production: JSON output for structured logging
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	// development: human-readable text output
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
}

// redirects the default logger to a file.
// the terminal belongs to the TUI while it runs, so logs go elsewhere.
// an empty path discards all output. the returned func closes the file.
func Setup(path, env string) (func() error, error) {
	if path == "" {
		Replace(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Replace(slog.New(newHandler(f, env)))

	return f.Close, nil
}

// swaps the default logger
func Replace(l *slog.Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// returns the default logger instance
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return defaultLogger
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// creates a logger with context
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Default()
	}

	// extract any logger from context if present
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// helper type for context key
type loggerKey struct{}

// convenience functions for common log levels

// logs a debug message
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Default().Error(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	Default().Error(msg, args...)
	os.Exit(1)
}
