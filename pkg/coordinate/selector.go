package coordinate

import (
	"fmt"
	"strings"
)

// projectPrefix marks a project selector in its display form.
const projectPrefix = "project "

// Selector is a requested dependency: either a [ModuleSelector] or a
// [ProjectSelector].
type Selector interface {
	// DisplayName returns the selector as Gradle prints it in dependency
	// reports ("group:module:version" or "project :path").
	DisplayName() string

	selector()
}

// ModuleSelector requests an external module. Version is whatever the
// consumer declared and may be a range or dynamic version.
type ModuleSelector struct {
	Group   string
	Module  string
	Version string
}

// ModuleID returns "group:module".
func (s ModuleSelector) ModuleID() string { return s.Group + ":" + s.Module }

// DisplayName returns "group:module:version", or "group:module" when no
// version was requested.
func (s ModuleSelector) DisplayName() string {
	if s.Version == "" {
		return s.ModuleID()
	}
	return s.ModuleID() + ":" + s.Version
}

func (ModuleSelector) selector() {}

// ProjectSelector requests another build unit of the same build.
type ProjectSelector struct {
	Path string
}

// DisplayName returns "project <path>".
func (s ProjectSelector) DisplayName() string { return projectPrefix + s.Path }

func (ProjectSelector) selector() {}

// ParseSelector parses the display form of a selector.
//
// "project :shared" yields a ProjectSelector. "group:module:version" and
// "group:module" (no version, as printed for constraint-only edges) yield a
// ModuleSelector. Everything after the second colon is kept verbatim as the
// version, so rich versions like "{strictly 1.0}" survive unchanged.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyCoordinate
	}
	if path, ok := strings.CutPrefix(s, projectPrefix); ok {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, fmt.Errorf("%w: %q (missing project path)", ErrMalformedCoordinate, s)
		}
		return ProjectSelector{Path: path}, nil
	}

	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q (want group:module[:version])", ErrMalformedCoordinate, s)
	}
	sel := ModuleSelector{Group: parts[0], Module: parts[1]}
	if len(parts) == 3 {
		sel.Version = parts[2]
	}
	return sel, nil
}
