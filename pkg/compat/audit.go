package compat

import (
	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// AuditFrameworkVersions returns the tracked framework libraries selected
// with a version different from expected.
//
// Identities are deduplicated by "group:name:version", so the same library
// resolved to two different versions yields two findings. Edges without a
// selected identity are ignored. Order follows the first occurrence in edges.
func AuditFrameworkVersions(edges []resolution.Edge, expected string) []coordinate.ModuleVersion {
	seen := make(map[string]bool)
	var out []coordinate.ModuleVersion
	for _, e := range edges {
		lib := e.Selected
		if lib == nil || !IsFrameworkLibrary(lib.Module()) {
			continue
		}
		key := lib.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if lib.Version != expected {
			out = append(out, *lib)
		}
	}
	return out
}

// AuditSkikoVersions returns the skiko edges whose requested and selected
// versions differ in their major.minor prefix (see [MajorMinor]).
//
// Project selectors and unresolved edges are never flagged.
func AuditSkikoVersions(edges []resolution.Edge) []resolution.Edge {
	var out []resolution.Edge
	for _, e := range edges {
		if incompatibleSkiko(e) {
			out = append(out, e)
		}
	}
	return out
}

func incompatibleSkiko(e resolution.Edge) bool {
	var requested coordinate.ModuleSelector
	switch s := e.Requested.(type) {
	case coordinate.ModuleSelector:
		requested = s
	case coordinate.ProjectSelector:
		return false
	default:
		return false
	}
	selected := e.Selected
	if selected == nil {
		return false
	}
	if requested.ModuleID() != SkikoLibrary || selected.Module() != SkikoLibrary {
		return false
	}
	return MajorMinor(requested.Version) != MajorMinor(selected.Version)
}
