package compat

import (
	"fmt"
	"strings"

	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// Report headers. Log scrapers match on these lines.
const (
	FrameworkHeader = "w: Compose Multiplatform runtime dependencies' versions don't match with plugin version."
	SkikoHeader     = "w: Skiko dependencies' versions are incompatible."
)

const (
	docsURL = "https://docs.gradle.org/current/userguide/viewing_debugging_dependencies.html#sec:listing-dependencies"

	unknown = "<unknown>"
)

// FormatFrameworkReport renders framework findings as a multi-line warning.
func FormatFrameworkReport(target resolution.Target, findings []coordinate.ModuleVersion, expected string) string {
	var b strings.Builder
	line(&b, FrameworkHeader)
	for _, lib := range findings {
		line(&b, fmt.Sprintf("    expected: '%s:%s:%s'", lib.Group, lib.Name, expected))
		line(&b, fmt.Sprintf("    actual:   '%s:%s:%s'", lib.Group, lib.Name, lib.Version))
		line(&b, "")
	}
	writeMismatchNote(&b, target)
	line(&b, "")
	line(&b, "Please update Compose Multiplatform Gradle plugin's version or align dependencies' versions to match the current plugin version.")
	return b.String()
}

// FormatSkikoReport renders skiko findings as a multi-line warning.
func FormatSkikoReport(target resolution.Target, findings []resolution.Edge) string {
	var b strings.Builder
	line(&b, SkikoHeader)
	for _, e := range findings {
		line(&b, "    "+originString(e.From))
		line(&b, fmt.Sprintf("    \\--- %s -> %s", selectorString(e.Requested), selectedVersion(e.Selected)))
		line(&b, "")
	}
	writeMismatchNote(&b, target)
	line(&b, "")
	line(&b, "Note: Skiko is considered implementation detail in Compose Multiplatform and might be incompatible across versions.")
	line(&b, "Please align Skiko dependencies to the same version. If possible, avoid direct Skiko references and use Compose APIs instead.")
	return b.String()
}

// DependenciesTaskPath returns the path of the Gradle "dependencies" task of
// the project at projectPath.
func DependenciesTaskPath(projectPath string) string {
	if projectPath != "" && !strings.HasSuffix(projectPath, ":") {
		return projectPath + ":dependencies"
	}
	return projectPath + "dependencies"
}

func writeMismatchNote(b *strings.Builder, target resolution.Target) {
	line(b, "This may lead to compilation errors or unexpected behavior at runtime.")
	line(b, "Such version mismatch might be caused by dependency constraints in one of the included libraries.")
	line(b, fmt.Sprintf("You can inspect resulted dependencies tree via `./gradlew %s  --configuration %s`.",
		DependenciesTaskPath(target.ProjectPath), target.Configuration))
	line(b, "See more details in Gradle documentation: "+docsURL)
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

func originString(m *coordinate.ModuleVersion) string {
	if m == nil {
		return unknown
	}
	return m.String()
}

func selectedVersion(m *coordinate.ModuleVersion) string {
	if m == nil {
		return unknown
	}
	return m.Version
}

func selectorString(s coordinate.Selector) string {
	switch s := s.(type) {
	case coordinate.ProjectSelector:
		return "project " + s.Path
	case coordinate.ModuleSelector:
		return s.Group + ":" + s.Module + ":" + s.Version
	case nil:
		return unknown
	default:
		return s.DisplayName()
	}
}
