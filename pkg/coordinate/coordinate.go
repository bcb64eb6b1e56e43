package coordinate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCoordinate is returned when parsing an empty string.
	ErrEmptyCoordinate = errors.New("coordinate must not be empty")

	// ErrMalformedCoordinate is returned when a coordinate does not have the
	// expected number of colon-separated parts, or one of them is empty.
	ErrMalformedCoordinate = errors.New("malformed coordinate")

	// ErrDynamicVersion is returned by [ParseModuleVersion] when the version is
	// a range or dynamic selector. Resolved identities always carry a concrete
	// version.
	ErrDynamicVersion = errors.New("resolved version must be concrete")
)

// ModuleVersion identifies a resolved external artifact.
// The zero value is not a valid identity.
type ModuleVersion struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Module returns "group:name".
func (m ModuleVersion) Module() string {
	return m.Group + ":" + m.Name
}

// String returns "group:name:version".
func (m ModuleVersion) String() string {
	return m.Group + ":" + m.Name + ":" + m.Version
}

// ParseModuleVersion parses "group:name:version" into a ModuleVersion.
// The version must be concrete; see [IsDynamicVersion].
func ParseModuleVersion(s string) (ModuleVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModuleVersion{}, ErrEmptyCoordinate
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ModuleVersion{}, fmt.Errorf("%w: %q (want group:name:version)", ErrMalformedCoordinate, s)
	}
	if IsDynamicVersion(parts[2]) {
		return ModuleVersion{}, fmt.Errorf("%w: %q", ErrDynamicVersion, s)
	}
	return ModuleVersion{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
}

// IsDynamicVersion reports whether v is a Gradle version range, a dynamic
// version ("1.+", "latest.release") or a rich-version block ("{strictly 1.0}").
func IsDynamicVersion(v string) bool {
	if v == "" {
		return false
	}
	switch v[0] {
	case '[', ']', '(', '{':
		return true
	}
	return strings.HasSuffix(v, "+") || strings.HasPrefix(v, "latest.")
}
