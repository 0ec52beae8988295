// Package cli implements the jigsaw command-line interface.
//
// The CLI lays out galleries, verifies the dynamic search against the
// exhaustive one, tunes layout parameters interactively and serves layouts
// over HTTP. It is built using cobra, reads configuration through viper and
// logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute justified row layouts for gallery files
//   - verify: Compare the dynamic search with exhaustive search
//   - tune: Adjust margin, ideal height and objective interactively
//   - serve: Serve layouts over HTTP
//
// # Configuration
//
// Layout and server options come from flags, JIGSAW_* environment
// variables and a jigsaw.toml file, in that order of precedence.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so command output can be piped.
//
// # Example
//
//	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 3 galleries (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
