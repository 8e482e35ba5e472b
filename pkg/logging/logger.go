// Package logging provides structured logging for the commons tools using zerolog.
// Commands log progress in human-readable console form on a terminal and as
// JSON lines when the output is redirected, which keeps batch runs greppable.
//
// Example usage:
//
//	log := logging.NewLoggerFromConfig(logging.Config{Level: "debug"})
//	log.Info().Str("directory", "gb-constituencies").Msg("Rewriting table")
//
//	ctx := logging.WithLogger(context.Background(), &log)
//	ctx = logging.WithDirectory(ctx, "gb-constituencies")
//	logging.FromContext(ctx).Debug().Msg("No identifier column")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used wherever no logger travels in the context.
var defaultLogger zerolog.Logger

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" && os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	defaultLogger = NewLoggerFromConfig(Config{
		Level:   level,
		Format:  os.Getenv("LOG_FORMAT"),
		NoColor: os.Getenv("NO_COLOR") != "",
		Caller:  parseLevel(level) <= zerolog.DebugLevel,
	})
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Warn starts a warning on the default logger, for code that has no context
// to carry one (deferred closes and the like).
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}
