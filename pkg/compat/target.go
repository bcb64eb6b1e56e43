package compat

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Platform is the Kotlin platform type of a target.
type Platform string

const (
	PlatformCommon     Platform = "common"
	PlatformJVM        Platform = "jvm"
	PlatformAndroidJVM Platform = "androidJvm"
	PlatformJS         Platform = "js"
	PlatformWasm       Platform = "wasm"
	PlatformNative     Platform = "native"
)

// ParsePlatform parses a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range []Platform{PlatformCommon, PlatformJVM, PlatformAndroidJVM, PlatformJS, PlatformWasm, PlatformNative} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// MainCompilation is the name of a target's production compilation.
const MainCompilation = "main"

// KotlinTarget describes a Kotlin target of a build unit.
type KotlinTarget struct {
	// Name is the target name ("jvm", "iosSimulatorArm64"). It is empty for
	// the single target of a Kotlin/JVM project.
	Name     string
	Platform Platform

	// AndroidLibrary marks a jvm-platform target that is not a plain Kotlin/JVM
	// target, as registered by the Android Gradle plugin's KMP library support.
	AndroidLibrary bool
}

// ShouldCheck reports whether compilations of t get a compatibility check.
// Metadata (common) and Android targets are never checked.
func ShouldCheck(t KotlinTarget) bool {
	switch t.Platform {
	case PlatformCommon, PlatformAndroidJVM:
		return false
	case PlatformJVM:
		return !t.AndroidLibrary
	default:
		return true
	}
}

// ConfigurationName returns the configuration audited for compilation of t.
// Native targets are audited on their compile configuration because they
// have no runtime classpath.
func ConfigurationName(t KotlinTarget, compilation string) string {
	if compilation == MainCompilation {
		compilation = ""
	}
	if t.Platform == PlatformNative {
		return JoinLowerCamelCase(t.Name, compilation, "compileKlibraries")
	}
	return JoinLowerCamelCase(t.Name, compilation, "runtimeClasspath")
}

// TaskName returns the name of the check task for compilation of t,
// e.g. "checkJvmMainComposeLibrariesCompatibility".
func TaskName(t KotlinTarget, compilation string) string {
	return JoinLowerCamelCase("check", t.Name, compilation, "composeLibrariesCompatibility")
}

// JoinLowerCamelCase joins the non-empty parts in lowerCamelCase.
func JoinLowerCamelCase(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		if b.Len() == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(p[size:])
	}
	return b.String()
}
