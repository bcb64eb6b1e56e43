package coordinate

import (
	"errors"
	"testing"
)

func TestParseModuleVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    ModuleVersion
		wantErr error
	}{
		{"org.jetbrains.compose.ui:ui:1.9.3", ModuleVersion{"org.jetbrains.compose.ui", "ui", "1.9.3"}, nil},
		{"  org.jetbrains.skiko:skiko:0.9.1 ", ModuleVersion{"org.jetbrains.skiko", "skiko", "0.9.1"}, nil},
		{"", ModuleVersion{}, ErrEmptyCoordinate},
		{"org.jetbrains.skiko:skiko", ModuleVersion{}, ErrMalformedCoordinate},
		{"org.jetbrains.skiko::0.9.1", ModuleVersion{}, ErrMalformedCoordinate},
		{"a:b:c:d", ModuleVersion{}, ErrMalformedCoordinate},
		{"org.jetbrains.skiko:skiko:0.+", ModuleVersion{}, ErrDynamicVersion},
		{"org.jetbrains.skiko:skiko:[0.8,0.9)", ModuleVersion{}, ErrDynamicVersion},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModuleVersion(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseModuleVersion(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModuleVersion(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseModuleVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModuleVersionStrings(t *testing.T) {
	m := ModuleVersion{Group: "org.jetbrains.compose.ui", Name: "ui", Version: "2.0.0"}
	if got := m.Module(); got != "org.jetbrains.compose.ui:ui" {
		t.Errorf("Module() = %q", got)
	}
	if got := m.String(); got != "org.jetbrains.compose.ui:ui:2.0.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestIsDynamicVersion(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"1.0.0", false},
		{"1.9.3-beta01", false},
		{"", false},
		{"1.+", true},
		{"+", true},
		{"[1.0,2.0)", true},
		{"(,2.0]", true},
		{"]1.0,2.0[", true},
		{"{strictly 1.0}", true},
		{"latest.release", true},
	}
	for _, tt := range tests {
		if got := IsDynamicVersion(tt.v); got != tt.want {
			t.Errorf("IsDynamicVersion(%q) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in   string
		want Selector
	}{
		{"project :shared", ProjectSelector{Path: ":shared"}},
		{"project :", ProjectSelector{Path: ":"}},
		{"org.jetbrains.skiko:skiko:0.8.4", ModuleSelector{"org.jetbrains.skiko", "skiko", "0.8.4"}},
		{"org.jetbrains.skiko:skiko", ModuleSelector{Group: "org.jetbrains.skiko", Module: "skiko"}},
		{"g:m:{strictly 1.0}", ModuleSelector{"g", "m", "{strictly 1.0}"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelector(tt.in)
			if err != nil {
				t.Fatalf("ParseSelector(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSelector(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSelectorErrors(t *testing.T) {
	for _, in := range []string{"", "project ", "noversion", ":m:1.0"} {
		if _, err := ParseSelector(in); err == nil {
			t.Errorf("ParseSelector(%q) should fail", in)
		}
	}
}

func TestSelectorDisplayName(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{ModuleSelector{"org.jetbrains.skiko", "skiko", "0.8.4"}, "org.jetbrains.skiko:skiko:0.8.4"},
		{ModuleSelector{"org.jetbrains.skiko", "skiko", ""}, "org.jetbrains.skiko:skiko"},
		{ProjectSelector{Path: ":shared"}, "project :shared"},
	}
	for _, tt := range tests {
		if got := tt.sel.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
