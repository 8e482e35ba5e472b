package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithDirectory tags log lines with the boundary directory being processed.
func WithDirectory(ctx context.Context, directory string) context.Context {
	return withString(ctx, "directory", directory)
}

// WithCountry tags log lines with an ISO 3166-1 country code.
func WithCountry(ctx context.Context, code string) context.Context {
	return withString(ctx, "country", code)
}

// WithOperation tags log lines with the command being run.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withString(ctx, "operation", operation)
}

func withString(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
