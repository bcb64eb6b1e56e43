package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// projectPathRegex matches Gradle project paths (":", ":app", ":libs:ui-kit").
var projectPathRegex = regexp.MustCompile(`^(:|(:[A-Za-z0-9._-]+)+)$`)

// ValidateProjectPath validates a Gradle build-unit path.
// The empty string is accepted and denotes the root project.
func ValidateProjectPath(path string) error {
	if path == "" {
		return nil
	}
	if !projectPathRegex.MatchString(path) {
		return New(ErrCodeInvalidProjectPath, "invalid project path: %q (want \":\" or \":a:b\")", path)
	}
	return nil
}

// configurationNameRegex matches Gradle configuration names.
var configurationNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateConfigurationName validates a configuration name such as
// "jvmRuntimeClasspath".
func ValidateConfigurationName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "configuration name cannot be empty")
	}
	if !configurationNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid configuration name: %q", name)
	}
	return nil
}

// ValidateVersion validates a version string used as the expected version.
// Versions are compared verbatim, so anything printable without spaces is
// accepted.
func ValidateVersion(v string) error {
	if v == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	for _, r := range v {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "version contains invalid characters: %q", v)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
