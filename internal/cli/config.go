package cli

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/composecheck/pkg/compat"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
)

// Environment variables consulted by [resolveSettings].
const (
	envDisable         = "COMPOSECHECK_DISABLE"
	envExpectedVersion = "COMPOSECHECK_EXPECTED_VERSION"
)

// disableProperty switches the check off from gradle.properties.
const disableProperty = "org.jetbrains.compose.library.compatibility.check.disable"

// Config is the content of composecheck.toml.
type Config struct {
	ExpectedVersion string         `toml:"expected_version"`
	Disable         *bool          `toml:"disable"`
	ProjectPath     string         `toml:"project_path"`
	FailOnWarning   bool           `toml:"fail_on_warning"`
	Targets         []TargetConfig `toml:"target"`
	Inputs          []InputConfig  `toml:"input"`
}

// TargetConfig declares a Kotlin target of the project.
type TargetConfig struct {
	Name           string   `toml:"name"`
	Platform       string   `toml:"platform"`
	AndroidLibrary bool     `toml:"android_library"`
	Compilations   []string `toml:"compilations"`
}

// InputConfig points at a resolved configuration to check.
//
// Either Target (with an optional Compilation, default "main") or
// Configuration names what is checked; Path or URL says where the Gradle
// report or JSON export lives.
type InputConfig struct {
	Target        string `toml:"target"`
	Compilation   string `toml:"compilation"`
	Configuration string `toml:"configuration"`
	Path          string `toml:"path"`
	URL           string `toml:"url"`
}

// loadConfig decodes the TOML file at path. When path is empty the default
// file in dir is used if it exists; a missing default file yields an empty
// Config.
func loadConfig(path, dir string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, defaultConfigFile)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, composeerr.Wrap(composeerr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, composeerr.New(composeerr.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}

	// Relative input paths are relative to the config file.
	base := filepath.Dir(path)
	for i, in := range cfg.Inputs {
		if in.Path != "" && in.Path != "-" && !filepath.IsAbs(in.Path) {
			cfg.Inputs[i].Path = filepath.Join(base, in.Path)
		}
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if err := composeerr.ValidateProjectPath(c.ProjectPath); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, t := range c.Targets {
		if _, err := compat.ParsePlatform(t.Platform); err != nil {
			return composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "target %q", t.Name)
		}
		if seen[t.Name] {
			return composeerr.New(composeerr.ErrCodeInvalidConfig, "duplicate target %q", t.Name)
		}
		seen[t.Name] = true
	}
	for i, in := range c.Inputs {
		if (in.Path == "") == (in.URL == "") {
			return composeerr.New(composeerr.ErrCodeInvalidConfig, "input %d: exactly one of path and url is required", i)
		}
		if in.URL != "" {
			if err := composeerr.ValidateURL(in.URL); err != nil {
				return composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "input %d", i)
			}
		}
		if in.Target != "" && !seen[in.Target] {
			return composeerr.New(composeerr.ErrCodeInvalidConfig, "input %d: unknown target %q", i, in.Target)
		}
		if in.Configuration != "" {
			if err := composeerr.ValidateConfigurationName(in.Configuration); err != nil {
				return composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "input %d", i)
			}
		}
	}
	return nil
}

// target returns the declared target called name.
func (c *Config) target(name string) (compat.KotlinTarget, []string, bool) {
	for _, t := range c.Targets {
		if t.Name != name {
			continue
		}
		platform, _ := compat.ParsePlatform(t.Platform)
		compilations := t.Compilations
		if len(compilations) == 0 {
			compilations = []string{compat.MainCompilation}
		}
		return compat.KotlinTarget{Name: t.Name, Platform: platform, AndroidLibrary: t.AndroidLibrary}, compilations, true
	}
	return compat.KotlinTarget{}, nil, false
}

// readGradleProperties parses a Java properties file. A missing file yields
// an empty map.
func readGradleProperties(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	props := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		i := strings.IndexAny(line, "=:")
		if i < 0 {
			props[line] = ""
			continue
		}
		props[strings.TrimSpace(line[:i])] = strings.TrimSpace(line[i+1:])
	}
	if err := sc.Err(); err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return props, nil
}

// settings are the effective run settings after merging every source.
type settings struct {
	expectedVersion string
	disabled        bool
	projectPath     string
	failOnWarning   bool
}

// overrides carries the values given on the command line. A nil pointer
// means the flag was not set.
type overrides struct {
	expectedVersion *string
	disabled        *bool
	projectPath     *string
	failOnWarning   *bool
}

// resolveSettings merges, from lowest to highest precedence,
// gradle.properties, the config file, the environment and flags.
func resolveSettings(cfg *Config, props map[string]string, getenv func(string) string, flags overrides) (settings, error) {
	var s settings

	if v, ok := props[disableProperty]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, composeerr.New(composeerr.ErrCodeInvalidConfig, "gradle.properties: %s=%q is not a boolean", disableProperty, v)
		}
		s.disabled = b
	}

	s.expectedVersion = cfg.ExpectedVersion
	if cfg.Disable != nil {
		s.disabled = *cfg.Disable
	}
	s.projectPath = cfg.ProjectPath
	s.failOnWarning = cfg.FailOnWarning

	if v := getenv(envExpectedVersion); v != "" {
		s.expectedVersion = v
	}
	if v := getenv(envDisable); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, composeerr.New(composeerr.ErrCodeInvalidConfig, "%s=%q is not a boolean", envDisable, v)
		}
		s.disabled = b
	}

	if flags.expectedVersion != nil {
		s.expectedVersion = *flags.expectedVersion
	}
	if flags.disabled != nil {
		s.disabled = *flags.disabled
	}
	if flags.projectPath != nil {
		s.projectPath = *flags.projectPath
	}
	if flags.failOnWarning != nil {
		s.failOnWarning = *flags.failOnWarning
	}

	if err := composeerr.ValidateProjectPath(s.projectPath); err != nil {
		return s, err
	}
	if !s.disabled {
		if s.expectedVersion == "" {
			return s, composeerr.New(composeerr.ErrCodeInvalidConfig,
				"no expected version: set --expected-version, %s or expected_version in %s", envExpectedVersion, defaultConfigFile)
		}
		if err := composeerr.ValidateVersion(s.expectedVersion); err != nil {
			return s, err
		}
	}
	return s, nil
}
