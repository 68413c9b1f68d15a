// Package cli implements the ticketsheet command-line interface.
//
// The CLI is built using cobra and logs with charmbracelet/log. Every command
// reads the same TOML configuration (see [config.Config]) and accepts flag
// overrides for its keys.
//
// # Commands
//
//   - generate: draw the ticket range and write the fronts and backs sheets
//   - preview: write one side of one ticket as PNG
//   - serve: serve ticket previews over HTTP
//   - init: interactively write a configuration file
//   - completion: shell completion scripts
//
// # Configuration
//
// Without --config, $XDG_CONFIG_HOME/ticketsheet/config.toml (or
// ~/.config/ticketsheet/config.toml) is used when it exists.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote 2 files (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
