package zipstore

import "log/slog"

// Option configures a Writer, including the writers created internally
// by Build and Save.
type Option func(*Writer)

// WithLogger sets the logger for archive operations.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithProgress sets a callback receiving progress updates as entries are
// written and the archive is finalized. Build and Save report exact byte
// and entry totals; a Writer constructed directly reports totals as
// unknown.
func WithProgress(fn ProgressFunc) Option {
	return func(w *Writer) {
		w.progress = fn
	}
}
