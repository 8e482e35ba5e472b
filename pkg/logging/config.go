package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/everypolitician/commons-tools/pkg/constants"
)

// Config mirrors the log_level, log_format and log_output settings.
type Config struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string

	// Format is console, json or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file the logs are appended to.
	Output string

	NoColor bool

	// Caller adds file:line to every line.
	Caller bool
}

// NewLoggerFromConfig builds a logger from cfg and raises or lowers the
// zerolog global level to match. A log file that cannot be opened is
// replaced by stderr and reported on the returned logger.
func NewLoggerFromConfig(cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out, openErr := openOutput(cfg.Output)

	logger := zerolog.New(formatWriter(out, cfg.Format, cfg.NoColor)).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.Caller {
		logger = logger.With().Caller().Logger()
	}

	if openErr != nil {
		logger.Warn().Err(openErr).Str("output", cfg.Output).Msg("Cannot open log file, logging to stderr")
	}
	return logger
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func openOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard":
		return io.Discard, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, err
	}
	return f, nil
}

func formatWriter(out io.Writer, format string, noColor bool) io.Writer {
	switch strings.ToLower(format) {
	case "console":
	case "", "auto":
		if !isTerminal(out) {
			return out
		}
	default:
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
