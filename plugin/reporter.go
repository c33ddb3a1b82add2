package plugin

import (
	"fmt"
	"io"
	"log/slog"
)

// SlogReporter bridges the diagnostics sink onto structured logging.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a slog-backed reporter.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) Info(message string) {
	r.logger.Info(message)
}

func (r *SlogReporter) Error(message string) {
	r.logger.Error(message)
}

// ConsoleReporter writes plain text lines, one per message. Used at
// the CLI edge where diagnostics are user-facing output rather than
// log records.
type ConsoleReporter struct {
	out io.Writer
	err io.Writer
}

// NewConsoleReporter creates a reporter over the given streams.
func NewConsoleReporter(out, err io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, err: err}
}

func (r *ConsoleReporter) Info(message string) {
	fmt.Fprintln(r.out, message)
}

func (r *ConsoleReporter) Error(message string) {
	fmt.Fprintln(r.err, message)
}
