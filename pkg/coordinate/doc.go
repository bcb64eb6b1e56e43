// Package coordinate models Maven-style dependency coordinates as they appear
// in a Gradle resolution result.
//
// # Resolved identities
//
// A [ModuleVersion] is what the resolver actually picked: a group, an artifact
// name and a concrete version. Its [ModuleVersion.Module] form ("group:name")
// is the identity used for set membership checks; its [ModuleVersion.String]
// form ("group:name:version") is the identity used for deduplication.
//
// # Selectors
//
// A [Selector] is what a consumer asked for. It is a closed sum type with two
// variants:
//
//   - [ModuleSelector]: group, module and a version string that may be a
//     range or a dynamic version ("1.+", "[1.0,2.0)", "{strictly 1.0}")
//   - [ProjectSelector]: a reference to another build unit ("project :shared")
//
// No other package can add variants. Consumers switch over the concrete types:
//
//	switch s := sel.(type) {
//	case coordinate.ModuleSelector:
//	    // s.Group, s.Module, s.Version
//	case coordinate.ProjectSelector:
//	    // s.Path
//	}
package coordinate
