// Package cli implements the composecheck command-line interface.
//
// # Commands
//
//   - check: audit resolved dependency configurations
//   - tasks: list the check tasks derived from the configured Kotlin targets
//   - export: convert a Gradle dependencies report to the JSON input format
//   - cache: manage the cache of downloaded reports
//   - completion: generate shell completion scripts
//
// # Output
//
// Compatibility reports go to the logger at warning level, one multi-line
// entry per finding class, so they land next to the Gradle output in CI logs.
// Summaries, task tables and JSON go to stdout. --verbose (-v) adds debug
// entries such as skipped targets and recovered audit failures.
//
// A failed command exits 1, a cancelled one 130, and check exits 2 when
// --fail-on-warning is set and findings were reported.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the logger reports are written to. Timestamps use
// "15:04:05.00" so consecutive configurations are easy to tell apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a batch of checks.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time: "Checked 3 configurations (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger installed by the root command, or
// log.Default() when a command runs without it (as in unit tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
