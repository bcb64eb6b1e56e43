// Package compat implements the Compose runtime-library compatibility check.
//
// # Overview
//
// Compose Multiplatform ships a Gradle plugin pinned to one Compose version.
// A project can still end up with a different version of the runtime libraries
// on its classpath, usually through dependency constraints of a transitive
// library. The check walks an already resolved configuration and reports two
// classes of findings:
//
//   - framework findings: a tracked Compose library (see [FrameworkLibraries])
//     resolved to a version other than the one the plugin expects
//   - skiko findings: a dependency on skiko (see [SkikoLibrary]) whose
//     requested and selected versions differ in their major.minor prefix
//
// Both audits are pure functions over a [resolution.Result]. Rendering is
// separate ([FormatFrameworkReport], [FormatSkikoReport]) and produces text that
// log-scraping tooling relies on, so it is kept byte-for-byte stable.
//
// # Running the check
//
// [Checker] is the unit the build schedules once per build-unit/configuration
// pair. It is gated by [Checker.Disabled], logs each non-empty report at
// warning level and never fails: a panic inside an audit only skips that
// finding class.
//
//	c := compat.Checker{ExpectedVersion: "1.8.0", Logger: logger}
//	outcome := c.Check(ctx, result)
//
// # Registration rules
//
// [ShouldCheck], [ConfigurationName] and [TaskName] describe which Kotlin
// targets and compilations get a check task and which configuration it audits.
package compat
