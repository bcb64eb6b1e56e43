package compat

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/observability"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// Logger is the logging sink of a [Checker]. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Logger interface {
	Warn(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}

// Checker runs the compatibility check for one configuration at a time.
// A Checker holds no mutable state and may be shared across goroutines.
type Checker struct {
	// ExpectedVersion is the Compose version the plugin is pinned to.
	ExpectedVersion string

	// Disabled skips the check entirely: nothing is computed or logged.
	Disabled bool

	// Logger receives the reports. A nil Logger discards them.
	Logger Logger
}

// Outcome is what a single check found.
type Outcome struct {
	Target    resolution.Target
	Skipped   bool
	Framework []coordinate.ModuleVersion
	Skiko     []resolution.Edge

	// Recovered lists the finding classes ("framework", "skiko") that were
	// dropped because their audit failed.
	Recovered []string
}

// Warnings returns the number of reports that were logged.
func (o Outcome) Warnings() int {
	n := 0
	if len(o.Framework) > 0 {
		n++
	}
	if len(o.Skiko) > 0 {
		n++
	}
	return n
}

// Check audits res and logs up to two warnings. It never fails; an internal
// failure of either audit is logged at debug level and recorded in
// [Outcome.Recovered].
func (c Checker) Check(ctx context.Context, res *resolution.Result) Outcome {
	var out Outcome
	if res != nil {
		out.Target = res.Target
	}
	label := out.Target.String()

	hooks := observability.Audit()
	hooks.OnAuditStart(ctx, label)
	start := time.Now()

	if c.Disabled {
		out.Skipped = true
		hooks.OnAuditComplete(ctx, label, observability.AuditResult{Skipped: true})
		return out
	}

	var edges []resolution.Edge
	if res != nil {
		edges = res.Edges
	}

	err := c.safely(func() {
		found := AuditFrameworkVersions(edges, c.ExpectedVersion)
		if len(found) > 0 {
			c.warn(FormatFrameworkReport(out.Target, found, c.ExpectedVersion))
		}
		out.Framework = found
	})
	if err != nil {
		out.Framework = nil
		out.Recovered = append(out.Recovered, "framework")
		c.debug("framework version check skipped", "target", label, "err", err)
	}

	err = c.safely(func() {
		found := AuditSkikoVersions(edges)
		if len(found) > 0 {
			c.warn(FormatSkikoReport(out.Target, found))
		}
		out.Skiko = found
	})
	if err != nil {
		out.Skiko = nil
		out.Recovered = append(out.Recovered, "skiko")
		c.debug("skiko version check skipped", "target", label, "err", err)
	}

	hooks.OnAuditComplete(ctx, label, observability.AuditResult{
		FrameworkFindings: len(out.Framework),
		SkikoFindings:     len(out.Skiko),
		Recovered:         len(out.Recovered),
		Duration:          time.Since(start),
	})
	return out
}

// safely runs fn and converts a panic into an error.
func (c Checker) safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	fn()
	return nil
}

func (c Checker) warn(msg string) {
	if c.Logger != nil {
		c.Logger.Warn(msg)
	}
}

func (c Checker) debug(msg string, keyvals ...interface{}) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keyvals...)
	}
}
