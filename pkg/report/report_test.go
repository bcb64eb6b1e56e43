package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/composecheck/pkg/compat"
	"github.com/matzehuels/composecheck/pkg/coordinate"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

func sampleOutcome() compat.Outcome {
	ui := coordinate.ModuleVersion{Group: "org.jetbrains.compose.ui", Name: "ui", Version: "1.9.3"}
	return compat.Outcome{
		Target:    resolution.Target{ProjectPath: ":app", Configuration: "jvmRuntimeClasspath"},
		Framework: []coordinate.ModuleVersion{ui},
		Skiko: []resolution.Edge{{
			Requested: coordinate.ModuleSelector{Group: "org.jetbrains.skiko", Module: "skiko", Version: "0.8.4"},
			Selected:  &coordinate.ModuleVersion{Group: "org.jetbrains.skiko", Name: "skiko", Version: "0.9.1"},
			From:      &ui,
		}},
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		actual, expected string
		want             Direction
	}{
		{"1.9.3", "2.0.0", DirectionOlder},
		{"2.1.0", "2.0.0", DirectionNewer},
		{"2.0.0-beta01", "2.0.0", DirectionOlder},
		{"1.10.0", "1.9.3", DirectionNewer},
		{"dev-SNAPSHOT", "2.0.0", DirectionUnknown},
		{"1.9.3", "", DirectionUnknown},
	}
	for _, tt := range tests {
		if got := Compare(tt.actual, tt.expected); got != tt.want {
			t.Errorf("Compare(%q, %q) = %q, want %q", tt.actual, tt.expected, got, tt.want)
		}
	}
}

func TestReportAdd(t *testing.T) {
	r := New("2.0.0")
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", r.ID, err)
	}

	r.Add("checkJvmMainComposeLibrariesCompatibility", sampleOutcome())
	r.Add("", compat.Outcome{Target: resolution.Target{Configuration: "wasmJsRuntimeClasspath"}, Skipped: true})

	if len(r.Results) != 2 {
		t.Fatalf("Results = %d, want 2", len(r.Results))
	}
	first := r.Results[0]
	if len(first.Framework) != 1 || first.Framework[0].Direction != DirectionOlder {
		t.Errorf("framework findings = %+v", first.Framework)
	}
	if first.Framework[0].Module != "org.jetbrains.compose.ui:ui" || first.Framework[0].Expected != "2.0.0" {
		t.Errorf("framework finding = %+v", first.Framework[0])
	}
	want := SkikoFinding{
		From:      "org.jetbrains.compose.ui:ui:1.9.3",
		Requested: "org.jetbrains.skiko:skiko:0.8.4",
		Selected:  "org.jetbrains.skiko:skiko:0.9.1",
	}
	if first.Skiko[0] != want {
		t.Errorf("skiko finding = %+v, want %+v", first.Skiko[0], want)
	}
	if !r.Results[1].Skipped {
		t.Error("second result should be skipped")
	}

	fw, sk := r.Totals()
	if fw != 1 || sk != 1 {
		t.Errorf("Totals() = %d, %d; want 1, 1", fw, sk)
	}
}

func TestWriteJSON(t *testing.T) {
	r := New("2.0.0")
	r.Add("", sampleOutcome())

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"id", "generated_at", "expected_version", "results"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if !strings.Contains(buf.String(), `"direction": "older"`) {
		t.Errorf("direction missing:\n%s", buf.String())
	}
}

func TestWriteMarkdown(t *testing.T) {
	r := New("2.0.0")
	r.Add("checkJvmMainComposeLibrariesCompatibility", sampleOutcome())
	r.Add("", compat.Outcome{Target: resolution.Target{ProjectPath: ":app", Configuration: "jsRuntimeClasspath"}})

	var buf bytes.Buffer
	if err := r.WriteMarkdown(&buf); err != nil {
		t.Fatal(err)
	}
	md := buf.String()
	for _, want := range []string{
		"**Findings:** 1 framework, 1 skiko",
		"## checkJvmMainComposeLibrariesCompatibility",
		"| org.jetbrains.compose.ui:ui | 2.0.0 | 1.9.3 | older |",
		"| org.jetbrains.compose.ui:ui:1.9.3 | org.jetbrains.skiko:skiko:0.8.4 | org.jetbrains.skiko:skiko:0.9.1 |",
		"## :app jsRuntimeClasspath",
		"_No findings._",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	r := New("2.0.0")
	r.Add("", sampleOutcome())

	jsonPath := filepath.Join(dir, "out", "report.json")
	if err := r.WriteFile(jsonPath); err != nil {
		t.Fatalf("WriteFile(json) failed: %v", err)
	}
	data, _ := os.ReadFile(jsonPath)
	if !json.Valid(data) {
		t.Errorf("report.json is not valid JSON")
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := r.WriteFile(mdPath); err != nil {
		t.Fatalf("WriteFile(md) failed: %v", err)
	}
	data, _ = os.ReadFile(mdPath)
	if !strings.HasPrefix(string(data), "# Compose compatibility report") {
		t.Errorf("report.md = %q", data)
	}
}
