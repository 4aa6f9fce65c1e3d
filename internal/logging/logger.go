// Package logging defines the structured-logging interface used across
// ScholarMatch and its log/slog implementation.
package logging

import "context"

// Logger writes leveled, structured records. The ctx argument lets the
// implementation pick up request-scoped values; args are alternating keys
// and values:
//
//	log.Info(ctx, "matching finished", "backend", "gemini", "results", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds args to every record of the returned logger.
	With(args ...any) Logger
}
