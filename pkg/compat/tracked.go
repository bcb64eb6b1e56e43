package compat

import (
	"maps"
	"regexp"
	"slices"
)

// frameworkLibraries are the Compose runtime modules ("group:name") whose
// resolved version must equal the plugin's version. Read-only.
var frameworkLibraries = map[string]bool{
	"org.jetbrains.compose.foundation:foundation": true,
	"org.jetbrains.compose.ui:ui":                 true,
}

// SkikoLibrary is the rendering library treated as an implementation detail.
const SkikoLibrary = "org.jetbrains.skiko:skiko"

var majorMinorRegex = regexp.MustCompile(`^(\d+)\.(\d+)`)

// FrameworkLibraries returns the tracked Compose modules, sorted.
func FrameworkLibraries() []string {
	return slices.Sorted(maps.Keys(frameworkLibraries))
}

// IsFrameworkLibrary reports whether module ("group:name") is tracked.
func IsFrameworkLibrary(module string) bool {
	return frameworkLibraries[module]
}

// MajorMinor returns the leading "major.minor" of version, or version itself
// when it does not start with two dot-separated numbers.
func MajorMinor(version string) string {
	m := majorMinorRegex.FindStringSubmatch(version)
	if m == nil {
		return version
	}
	return m[1] + "." + m[2]
}
