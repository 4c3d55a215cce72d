package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type so only this package can place a logger in a
// context.
type contextKey struct{}

// WithLogger returns a copy of ctx carrying log. Request middleware uses
// this to hand a request-scoped logger to the layers below.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger stored in ctx, or nil if none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	log, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return log
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// fallback, and to slog.Default() if that is nil too.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log := FromContext(ctx); log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
