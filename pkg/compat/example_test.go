package compat_test

import (
	"fmt"

	"github.com/matzehuels/composecheck/pkg/compat"
	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

func ExampleAuditFrameworkVersions() {
	ui := coordinate.ModuleVersion{Group: "org.jetbrains.compose.ui", Name: "ui", Version: "1.9.3"}
	edges := []resolution.Edge{
		{Requested: coordinate.ModuleSelector{Group: ui.Group, Module: ui.Name, Version: "1.9.3"}, Selected: &ui},
	}

	for _, lib := range compat.AuditFrameworkVersions(edges, "2.0.0") {
		fmt.Println(lib)
	}
	// Output:
	// org.jetbrains.compose.ui:ui:1.9.3
}

func ExampleMajorMinor() {
	fmt.Println(compat.MajorMinor("0.8.4"))
	fmt.Println(compat.MajorMinor("0.9.1-beta"))
	fmt.Println(compat.MajorMinor("SNAPSHOT"))
	// Output:
	// 0.8
	// 0.9
	// SNAPSHOT
}

func ExampleDependenciesTaskPath() {
	fmt.Println(compat.DependenciesTaskPath(":app"))
	fmt.Println(compat.DependenciesTaskPath(""))
	// Output:
	// :app:dependencies
	// dependencies
}

func ExampleTaskName() {
	jvm := compat.KotlinTarget{Name: "jvm", Platform: compat.PlatformJVM}
	fmt.Println(compat.TaskName(jvm, compat.MainCompilation))
	fmt.Println(compat.ConfigurationName(jvm, compat.MainCompilation))
	// Output:
	// checkJvmMainComposeLibrariesCompatibility
	// jvmRuntimeClasspath
}
