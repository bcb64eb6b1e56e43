// Package resolution holds the read-only snapshot of a resolved dependency
// configuration, as handed over by the build tool.
//
// A [Result] is built once per build-unit/configuration pair by a loader
// (see package io), consumed by the compatibility auditor and discarded.
// Nothing in this module resolves or mutates a Result.
package resolution

import "github.com/matzehuels/composecheck/pkg/coordinate"

// Edge is one dependency edge of a resolution result.
//
// Selected is nil when the edge did not resolve to an external module
// (a failed resolution or a project-local dependency). When present its
// version is always concrete.
type Edge struct {
	Requested coordinate.Selector
	Selected  *coordinate.ModuleVersion
	From      *coordinate.ModuleVersion
}

// Target identifies the build unit and configuration a result belongs to.
// It is only used to attribute diagnostics.
type Target struct {
	ProjectPath   string `json:"project_path" toml:"project_path"`
	Configuration string `json:"configuration" toml:"configuration"`
}

// String returns "<projectPath> <configuration>", with ":" for the root project.
func (t Target) String() string {
	path := t.ProjectPath
	if path == "" {
		path = ":"
	}
	return path + " " + t.Configuration
}

// Result is the flattened edge set of one resolved configuration.
type Result struct {
	Target Target
	Edges  []Edge

	// ProjectNamed is set when the input stated the project path itself,
	// so an empty Target.ProjectPath means the root project rather than
	// an unknown one.
	ProjectNamed bool
}

// EdgeCount returns the number of edges.
func (r *Result) EdgeCount() int { return len(r.Edges) }
