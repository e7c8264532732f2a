// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"

	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
}

// New creates a new Logger writing human-readable records to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		logger: slog.New(newHandler(w)),
	}
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error together with the zerr metadata found anywhere in its tree,
// including every branch of a joined error.
func (l *Logger) Error(err error) {
	attrs := []any{"error", err.Error()}
	attrs = appendMetadata(attrs, err)
	l.logger.Error("operation failed", attrs...)
}

func appendMetadata(attrs []any, err error) []any {
	if err == nil {
		return attrs
	}

	if z, ok := err.(*zerr.Error); ok {
		for k, v := range z.Metadata() {
			attrs = append(attrs, k, v)
		}
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			attrs = appendMetadata(attrs, inner)
		}
	case interface{ Unwrap() error }:
		attrs = appendMetadata(attrs, u.Unwrap())
	}
	return attrs
}
