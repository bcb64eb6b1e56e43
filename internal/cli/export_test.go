package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/composecheck/pkg/compat"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	pkgio "github.com/matzehuels/composecheck/pkg/io"
)

func TestExportToStdout(t *testing.T) {
	c, stdout, _ := testCLI(t)

	if err := execute(c, "export", "testdata/jvm-dependencies.txt", "--configuration", "jvmRuntimeClasspath"); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	res, err := pkgio.ReadJSON(strings.NewReader(stdout.String()))
	if err != nil {
		t.Fatalf("exported JSON does not load: %v\n%s", err, stdout.String())
	}
	if res.Target.ProjectPath != ":app" || res.Target.Configuration != "jvmRuntimeClasspath" {
		t.Errorf("Target = %+v", res.Target)
	}
	if res.EdgeCount() != 4 {
		t.Errorf("edges = %d, want 4", res.EdgeCount())
	}
}

func TestExportThenCheck(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "jvm.json")

	c, stdout, _ := testCLI(t)
	if err := execute(c, "export", "testdata/jvm-dependencies.txt", "--configuration", "jvmRuntimeClasspath", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Exported 4 edges") {
		t.Errorf("missing export line:\n%s", stdout.String())
	}

	c, _, logs := testCLI(t)
	if err := execute(c, "check", out, "-e", "2.0.0", "--project-dir", dir); err != nil {
		t.Fatalf("check of exported file failed: %v", err)
	}
	for _, want := range []string{compat.FrameworkHeader, compat.SkikoHeader, "./gradlew :app:dependencies  --configuration jvmRuntimeClasspath"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("check output missing %q:\n%s", want, logs.String())
		}
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code composeerr.Code
		msg  string
	}{
		{"several configurations", []string{"testdata/jvm-dependencies.txt"}, composeerr.ErrCodeInvalidInput, "jvmRuntimeClasspath, jvmTestRuntimeClasspath"},
		{"unknown configuration", []string{"testdata/jvm-dependencies.txt", "--configuration", "wasmJsRuntimeClasspath"}, composeerr.ErrCodeInvalidInput, "not found"},
		{"missing report", []string{"testdata/nope.txt"}, composeerr.ErrCodeFileNotFound, "nope.txt"},
		{"bad project path", []string{"testdata/jvm-dependencies.txt", "-p", "app"}, composeerr.ErrCodeInvalidProjectPath, "app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := testCLI(t)
			err := execute(c, append([]string{"export"}, tt.args...)...)
			if got := composeerr.GetCode(err); got != tt.code {
				t.Fatalf("code = %q, want %q (err %v)", got, tt.code, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %v, want mention of %q", err, tt.msg)
			}
		})
	}
}

func TestExportAppliesProjectPath(t *testing.T) {
	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.txt", "runtimeClasspath\n\\--- org.jetbrains.compose.ui:ui:1.9.3\n")

	c, stdout, _ := testCLI(t)
	if err := execute(c, "export", bare, "-p", ":desktop"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout.String(), `"project_path": ":desktop"`) {
		t.Errorf("project path not applied:\n%s", stdout.String())
	}
}
