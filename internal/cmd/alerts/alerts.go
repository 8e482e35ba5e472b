// Package alerts writes short status notifications (progress, warnings,
// completion) to stderr, separate from a command's formatted output.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithDetails adds indented detail lines to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert as one line, without color.
func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// Config configures a writer.
type Config struct {
	// Quiet drops everything below LevelWarning.
	Quiet bool
	// NoColor disables ANSI colors even on a terminal.
	NoColor bool
}

// NewWriterTo creates a Writer printing to w, colored when w is a terminal.
func NewWriterTo(w io.Writer, cfg Config) Writer {
	color := !cfg.NoColor && isTerminal(w)
	return WriterFunc(func(alert *Alert) error {
		if cfg.Quiet && alert.Level > LevelWarning {
			return nil
		}
		line := alert.String()
		if color {
			line = alert.Level.Color() + line + resetColor
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(w, "  %s\n", detail); err != nil {
				return err
			}
		}
		return nil
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
