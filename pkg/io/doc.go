// Package io loads resolution results from files and writes them back.
//
// # Formats
//
// Two input formats are understood.
//
// The Gradle dependency report is the text printed by
// `./gradlew <project>:dependencies --configuration <name>`:
//
//	jvmRuntimeClasspath - Runtime dependencies for 'jvm'.
//	+--- org.jetbrains.compose.ui:ui:1.9.3 -> 2.0.0
//	|    \--- org.jetbrains.skiko:skiko:0.8.4 -> 0.9.1
//	\--- project :shared
//
// The tree is flattened into edges. Each edge's origin is its parent node's
// selected module; top-level edges have no origin. Project dependencies,
// FAILED entries and entries marked (n) produce edges without a selected
// module. A report that lists several configurations yields one result per
// configuration.
//
// The JSON format is a flat edge list:
//
//	{
//	  "project_path": ":app",
//	  "configuration": "jvmRuntimeClasspath",
//	  "edges": [
//	    {"requested": "org.jetbrains.skiko:skiko:0.8.4",
//	     "selected": "org.jetbrains.skiko:skiko:0.9.1",
//	     "from": "org.jetbrains.compose.ui:ui:1.6.11"},
//	    {"requested": "project :shared"}
//	  ]
//	}
//
// [WriteJSON] produces this format, so a parsed Gradle report can be
// exported and re-imported.
//
// # Loading
//
// [Load] and [LoadFile] detect the format from content when [FormatAuto] is
// given. Every error returned by this package carries a code from
// pkg/errors (INVALID_FORMAT, INVALID_COORDINATE, FILE_NOT_FOUND).
package io
