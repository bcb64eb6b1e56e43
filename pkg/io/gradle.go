package io

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/composecheck/pkg/coordinate"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

const (
	branch     = "+--- "
	lastBranch = `\--- `
	indent     = 5
)

// Markers Gradle appends to tree entries.
const (
	markerOmitted     = " (*)"
	markerConstraint  = " (c)"
	markerNotResolved = " (n)"
	markerFailed      = " FAILED"
)

var (
	// "jvmRuntimeClasspath - Runtime dependencies for 'jvm'."
	configHeader = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)(?: - .*)?$`)
	// "Project ':app'" or "Root project 'demo'"
	projectHeader = regexp.MustCompile(`^(Root project|Project) '([^']*)'`)
	// "{strictly 1.0}" and friends; the first bound is what was asked for.
	richVersion = regexp.MustCompile(`^\{(?:strictly|require|prefer) ([^;}]+)`)
)

// ReadGradleReport parses the text of a Gradle dependencies report.
//
// One result is returned per configuration section. Lines outside a
// recognised section, such as task banners and the legend, are ignored.
// Tree lines that appear before any section header are collected into a
// result with an empty configuration name. The project path comes from the
// "Project ':x'" banner when present; the root project uses "" and is
// marked [resolution.Result.ProjectNamed] like any other banner.
func ReadGradleReport(r io.Reader) ([]*resolution.Result, error) {
	p := &treeParser{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; sc.Scan(); n++ {
		if err := p.line(sc.Text()); err != nil {
			return nil, composeerr.Wrap(composeerr.ErrCodeInvalidFormat, err, "line %d", n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidInput, err, "read report")
	}
	if len(p.results) == 0 {
		return nil, composeerr.New(composeerr.ErrCodeInvalidFormat, "no dependency tree found")
	}
	return p.results, nil
}

// ImportGradleReport reads a Gradle dependencies report from path.
func ImportGradleReport(path string) ([]*resolution.Result, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGradleReport(f)
}

type treeParser struct {
	projectPath  string
	projectNamed bool
	current     *resolution.Result
	// parents[d] is the selected module of the last entry at depth d.
	parents []*coordinate.ModuleVersion
	results []*resolution.Result
}

func (p *treeParser) line(raw string) error {
	text := strings.TrimRight(raw, " \t\r")
	if text == "" {
		return nil
	}

	if m := projectHeader.FindStringSubmatch(text); m != nil {
		p.projectPath = ""
		p.projectNamed = true
		if m[1] == "Project" {
			p.projectPath = m[2]
		}
		p.current = nil
		return nil
	}

	depth, entry, ok := splitTreeLine(text)
	if !ok {
		// Anything else is a banner, the legend or build output.
		if m := configHeader.FindStringSubmatch(text); m != nil {
			p.begin(m[1])
		}
		return nil
	}

	if p.current == nil {
		p.begin("")
	}
	if depth > len(p.parents) {
		return composeerr.New(composeerr.ErrCodeInvalidFormat, "entry at depth %d has no parent", depth)
	}

	e, err := parseEntry(entry)
	if err != nil {
		return err
	}
	if depth > 0 {
		e.From = p.parents[depth-1]
	}
	p.parents = append(p.parents[:depth], e.Selected)
	p.current.Edges = append(p.current.Edges, e)
	return nil
}

func (p *treeParser) begin(configuration string) {
	p.current = &resolution.Result{
		Target:       resolution.Target{ProjectPath: p.projectPath, Configuration: configuration},
		ProjectNamed: p.projectNamed,
	}
	p.parents = p.parents[:0]
	p.results = append(p.results, p.current)
}

// splitTreeLine returns the nesting depth and the entry text of a tree line.
func splitTreeLine(s string) (depth int, entry string, ok bool) {
	i := strings.Index(s, branch)
	if j := strings.Index(s, lastBranch); j >= 0 && (i < 0 || j < i) {
		i = j
	}
	if i < 0 || i%indent != 0 {
		return 0, "", false
	}
	for _, c := range s[:i] {
		if c != ' ' && c != '|' {
			return 0, "", false
		}
	}
	return i / indent, s[i+len(branch):], true
}

// parseEntry turns one tree entry into an edge without origin.
func parseEntry(entry string) (resolution.Edge, error) {
	resolved := true
	for {
		trimmed := false
		for _, m := range []string{markerOmitted, markerConstraint, markerNotResolved, markerFailed} {
			if s, ok := strings.CutSuffix(entry, m); ok {
				entry = s
				trimmed = true
				if m == markerFailed || m == markerNotResolved {
					resolved = false
				}
			}
		}
		if !trimmed {
			break
		}
	}

	requested, selectedVersion, arrow := strings.Cut(entry, " -> ")
	sel, err := coordinate.ParseSelector(requested)
	if err != nil {
		return resolution.Edge{}, err
	}

	var e resolution.Edge
	switch s := sel.(type) {
	case coordinate.ProjectSelector:
		e.Requested = s
	case coordinate.ModuleSelector:
		if m := richVersion.FindStringSubmatch(s.Version); m != nil {
			s.Version = strings.TrimSpace(m[1])
		}
		e.Requested = s
		if !arrow {
			selectedVersion = s.Version
		}
		if resolved {
			e.Selected = selectedModule(s, strings.TrimSpace(selectedVersion))
		}
	}
	return e, nil
}

// selectedModule returns nil when Gradle did not print a concrete version.
// A rename ("g:a:1.0 -> g:b:2.0") selects the other module.
func selectedModule(req coordinate.ModuleSelector, version string) *coordinate.ModuleVersion {
	if strings.Count(version, ":") == 2 {
		if mv, err := coordinate.ParseModuleVersion(version); err == nil {
			return &mv
		}
		return nil
	}
	if version == "" || coordinate.IsDynamicVersion(version) {
		return nil
	}
	return &coordinate.ModuleVersion{Group: req.Group, Name: req.Module, Version: version}
}
