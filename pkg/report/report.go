// Package report collects check outcomes into a machine-readable document.
//
// A [Report] is built incrementally with [Report.Add] while the CLI checks
// each configuration, then written as JSON ([Report.WriteJSON]) for CI
// consumption or as Markdown ([Report.WriteMarkdown]) for job summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	mm "github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/matzehuels/composecheck/pkg/compat"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// Direction tells which way a framework library drifted from the expected
// version.
type Direction string

const (
	DirectionOlder   Direction = "older"
	DirectionNewer   Direction = "newer"
	DirectionUnknown Direction = "unknown"
)

// Report is the document for one composecheck run.
type Report struct {
	ID              string    `json:"id"`
	GeneratedAt     time.Time `json:"generated_at"`
	ExpectedVersion string    `json:"expected_version"`
	Results         []Result  `json:"results"`
}

// Result is the outcome of one checked configuration.
type Result struct {
	Task          string             `json:"task,omitempty"`
	ProjectPath   string             `json:"project_path"`
	Configuration string             `json:"configuration"`
	Skipped       bool               `json:"skipped"`
	Recovered     []string           `json:"recovered,omitempty"`
	Framework     []FrameworkFinding `json:"framework"`
	Skiko         []SkikoFinding     `json:"skiko"`
}

// FrameworkFinding is a tracked library selected at an unexpected version.
type FrameworkFinding struct {
	Module    string    `json:"module"`
	Expected  string    `json:"expected"`
	Actual    string    `json:"actual"`
	Direction Direction `json:"direction"`
}

// SkikoFinding is a Skiko edge whose selection changed major.minor.
type SkikoFinding struct {
	From      string `json:"from,omitempty"`
	Requested string `json:"requested"`
	Selected  string `json:"selected,omitempty"`
}

// New starts an empty report with a fresh run ID.
func New(expectedVersion string) *Report {
	return &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		ExpectedVersion: expectedVersion,
		Results:         []Result{},
	}
}

// Add appends the outcome of one check. task may be empty when the input
// was not tied to a Kotlin target.
func (r *Report) Add(task string, o compat.Outcome) {
	res := Result{
		Task:          task,
		ProjectPath:   o.Target.ProjectPath,
		Configuration: o.Target.Configuration,
		Skipped:       o.Skipped,
		Recovered:     o.Recovered,
		Framework:     make([]FrameworkFinding, 0, len(o.Framework)),
		Skiko:         make([]SkikoFinding, 0, len(o.Skiko)),
	}
	for _, lib := range o.Framework {
		res.Framework = append(res.Framework, FrameworkFinding{
			Module:    lib.Module(),
			Expected:  r.ExpectedVersion,
			Actual:    lib.Version,
			Direction: Compare(lib.Version, r.ExpectedVersion),
		})
	}
	for _, e := range o.Skiko {
		res.Skiko = append(res.Skiko, skikoFinding(e))
	}
	r.Results = append(r.Results, res)
}

// Totals returns the number of framework and Skiko findings across all
// results.
func (r *Report) Totals() (framework, skiko int) {
	for _, res := range r.Results {
		framework += len(res.Framework)
		skiko += len(res.Skiko)
	}
	return framework, skiko
}

// Compare reports whether actual is older or newer than expected. Versions
// that don't parse as semantic versions yield [DirectionUnknown].
func Compare(actual, expected string) Direction {
	a, err := mm.NewVersion(actual)
	if err != nil {
		return DirectionUnknown
	}
	e, err := mm.NewVersion(expected)
	if err != nil {
		return DirectionUnknown
	}
	switch a.Compare(e) {
	case -1:
		return DirectionOlder
	case 1:
		return DirectionNewer
	}
	return DirectionUnknown
}

func skikoFinding(e resolution.Edge) SkikoFinding {
	var f SkikoFinding
	if e.From != nil {
		f.From = e.From.String()
	}
	if e.Requested != nil {
		f.Requested = e.Requested.DisplayName()
	}
	if e.Selected != nil {
		f.Selected = e.Selected.String()
	}
	return f
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteMarkdown writes a summary table per configuration.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var sb strings.Builder
	framework, skiko := r.Totals()

	sb.WriteString("# Compose compatibility report\n\n")
	fmt.Fprintf(&sb, "**Run:** `%s`\n", r.ID)
	fmt.Fprintf(&sb, "**Expected version:** %s\n", r.ExpectedVersion)
	fmt.Fprintf(&sb, "**Findings:** %d framework, %d skiko\n\n", framework, skiko)

	for _, res := range r.Results {
		title := res.Task
		if title == "" {
			title = resolution.Target{ProjectPath: res.ProjectPath, Configuration: res.Configuration}.String()
		}
		fmt.Fprintf(&sb, "## %s\n\n", title)

		switch {
		case res.Skipped:
			sb.WriteString("_Check disabled._\n\n")
			continue
		case len(res.Framework) == 0 && len(res.Skiko) == 0:
			sb.WriteString("_No findings._\n\n")
			continue
		}

		if len(res.Framework) > 0 {
			sb.WriteString("| Module | Expected | Actual | Drift |\n")
			sb.WriteString("| :--- | :--- | :--- | :--- |\n")
			for _, f := range res.Framework {
				fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", f.Module, f.Expected, f.Actual, f.Direction)
			}
			sb.WriteString("\n")
		}
		if len(res.Skiko) > 0 {
			sb.WriteString("| From | Requested | Selected |\n")
			sb.WriteString("| :--- | :--- | :--- |\n")
			for _, f := range res.Skiko {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", orUnknown(f.From), f.Requested, orUnknown(f.Selected))
			}
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFile writes the report to path, as Markdown when the extension is
// .md and as JSON otherwise. Parent directories are created.
func (r *Report) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".md") {
		return r.WriteMarkdown(f)
	}
	return r.WriteJSON(f)
}

func orUnknown(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}
