package vortex

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Giulio2002/vortexhash/internal/capability"
)

// Logger wraps slog.Logger with vortex-specific helpers so every component
// logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithTier adds a tier field.
func (l *Logger) WithTier(t capability.Tier) *Logger {
	return &Logger{Logger: l.Logger.With("tier", t.String())}
}

// LogTierSelected logs the outcome of dispatcher construction.
func (l *Logger) LogTierSelected(ctx context.Context, p capability.Profile, chosen capability.Tier, kernel string) {
	l.DebugContext(ctx, "tier selected",
		"tier", chosen.String(),
		"kernel", kernel,
		"requested", p.Chosen.String(),
		"throughput_mbps", chosen.Throughput(),
		"overridden", p.Overridden,
		"brand", p.Brand,
	)
	for _, name := range p.Unprobed {
		l.DebugContext(ctx, "feature probe failed", "feature", name)
	}
}

// LogFallback logs a tier being skipped.
func (l *Logger) LogFallback(ctx context.Context, from capability.Tier, reason string) {
	l.DebugContext(ctx, "tier unavailable, falling back",
		"tier", from.String(),
		"reason", reason,
	)
}

// LogBatch logs a completed or failed batch.
func (l *Logger) LogBatch(ctx context.Context, count int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch hash aborted",
			"count", count,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "batch hash completed",
		"count", count,
		"elapsed", elapsed,
	)
}
