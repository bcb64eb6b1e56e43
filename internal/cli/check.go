package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/composecheck/pkg/compat"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/httputil"
	pkgio "github.com/matzehuels/composecheck/pkg/io"
	"github.com/matzehuels/composecheck/pkg/observability"
	"github.com/matzehuels/composecheck/pkg/report"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// ErrWarnings is returned by the check command with --fail-on-warning when
// any compatibility warning was emitted.
var ErrWarnings = errors.New("compatibility warnings found")

// Output formats of the check command.
const (
	formatText = "text"
	formatJSON = "json"
)

// checkOpts holds the check command's flags.
type checkOpts struct {
	configPath      string
	projectDir      string
	expectedVersion string
	disable         bool
	projectPath     string
	configuration   string
	inputFormat     string
	format          string
	failOnWarning   bool
	reportPath      string
	metricsPath     string
	noCache         bool
	refresh         bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [report...]",
		Short: "Check resolved configurations for Compose library mismatches",
		Long: `Check resolved dependency configurations for Compose Multiplatform runtime
library versions that differ from the expected version, and for Skiko selections
that changed major.minor relative to what was requested.

Reports are the output of ./gradlew <project>:dependencies --configuration <name>
or JSON exports. Pass file paths, URLs or "-" for stdin; without arguments the
[[input]] entries of composecheck.toml are checked.`,
		Example: `  # Check a saved Gradle report
  ./gradlew :app:dependencies --configuration jvmRuntimeClasspath > deps.txt
  composecheck check deps.txt --expected-version 1.8.0 --project-path :app

  # Check every input declared in composecheck.toml and write a CI report
  composecheck check --report build/composecheck.json --fail-on-warning`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := overrides{}
			if cmd.Flags().Changed("expected-version") {
				flags.expectedVersion = &opts.expectedVersion
			}
			if cmd.Flags().Changed("disable") {
				flags.disabled = &opts.disable
			}
			if cmd.Flags().Changed("project-path") {
				flags.projectPath = &opts.projectPath
			}
			if cmd.Flags().Changed("fail-on-warning") {
				flags.failOnWarning = &opts.failOnWarning
			}
			return c.runCheck(cmd.Context(), args, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: <project-dir>/composecheck.toml)")
	cmd.Flags().StringVar(&opts.projectDir, "project-dir", ".", "directory holding gradle.properties and composecheck.toml")
	cmd.Flags().StringVarP(&opts.expectedVersion, "expected-version", "e", "", "Compose Multiplatform version the build is pinned to")
	cmd.Flags().BoolVar(&opts.disable, "disable", false, "skip the check")
	cmd.Flags().StringVarP(&opts.projectPath, "project-path", "p", "", "Gradle project path for reports that don't name one (e.g. :app)")
	cmd.Flags().StringVar(&opts.configuration, "configuration", "", "configuration to check when a report lists several")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "auto", "input format: auto, gradle, json")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json")
	cmd.Flags().BoolVar(&opts.failOnWarning, "fail-on-warning", false, "exit non-zero when warnings are emitted")
	cmd.Flags().StringVarP(&opts.reportPath, "report", "o", "", "write a report file (.json or .md)")
	cmd.Flags().StringVar(&opts.metricsPath, "metrics-textfile", "", "write Prometheus metrics in textfile format")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "don't cache downloaded reports")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-download cached reports")

	completeValues(cmd, "format", formatText, formatJSON)
	completeValues(cmd, "input-format", string(pkgio.FormatAuto), string(pkgio.FormatGradle), string(pkgio.FormatJSON))
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagDirname("project-dir")

	return cmd
}

// checkInput is one source of resolution results.
type checkInput struct {
	source        string // file path, URL or "-"
	task          string
	configuration string
}

func (in checkInput) isURL() bool {
	return strings.HasPrefix(in.source, "http://") || strings.HasPrefix(in.source, "https://")
}

// checked is one audited configuration.
type checked struct {
	task    string
	edges   int
	outcome compat.Outcome
}

func (c *CLI) runCheck(ctx context.Context, args []string, opts checkOpts, flags overrides) error {
	logger := loggerFromContext(ctx)

	if opts.format != formatText && opts.format != formatJSON {
		return composeerr.New(composeerr.ErrCodeUnsupported, "unknown output format %q (want text or json)", opts.format)
	}
	if _, err := pkgio.ParseFormat(opts.inputFormat); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath, opts.projectDir)
	if err != nil {
		return err
	}
	props, err := readGradleProperties(filepath.Join(opts.projectDir, "gradle.properties"))
	if err != nil {
		return err
	}
	s, err := resolveSettings(cfg, props, os.Getenv, flags)
	if err != nil {
		return err
	}

	var metrics *observability.PrometheusHooks
	if opts.metricsPath != "" {
		metrics = observability.NewPrometheusHooks()
		observability.SetAuditHooks(metrics)
		observability.SetHTTPHooks(metrics)
		defer observability.Reset()
	}

	var results []checked
	if s.disabled {
		logger.Info("compatibility check disabled")
		results = skipInputs(ctx, cfg, args, opts.configuration, s.projectPath, logger)
	} else {
		inputs, err := planInputs(cfg, args, opts.configuration, logger)
		if err != nil {
			return err
		}
		if results, err = c.checkInputs(ctx, inputs, opts, s); err != nil {
			return err
		}
	}

	rep := report.New(s.expectedVersion)
	warnings := 0
	for _, r := range results {
		rep.Add(r.task, r.outcome)
		warnings += r.outcome.Warnings()
	}

	switch opts.format {
	case formatJSON:
		if err := rep.WriteJSON(c.stdout); err != nil {
			return err
		}
	default:
		c.printCheckSummary(results, rep)
	}

	if opts.reportPath != "" {
		if err := rep.WriteFile(opts.reportPath); err != nil {
			return err
		}
		c.printOutput(opts.format, opts.reportPath)
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(opts.metricsPath); err != nil {
			return err
		}
		c.printOutput(opts.format, opts.metricsPath)
	}

	if s.failOnWarning && warnings > 0 {
		return ErrWarnings
	}
	return nil
}

// checkInputs loads every input and runs the checker on each configuration.
func (c *CLI) checkInputs(ctx context.Context, inputs []checkInput, opts checkOpts, s settings) ([]checked, error) {
	logger := loggerFromContext(ctx)
	inputFormat, err := pkgio.ParseFormat(opts.inputFormat)
	if err != nil {
		return nil, err
	}

	checker := compat.Checker{ExpectedVersion: s.expectedVersion, Logger: logger}
	fetcher := c.newFetcher(opts.noCache, opts.refresh)
	fallback := resolution.Target{ProjectPath: s.projectPath}
	prog := newProgress(logger)

	var results []checked
	for _, in := range inputs {
		loaded, err := c.loadInput(ctx, fetcher, in, inputFormat, fallback)
		if err != nil {
			return nil, err
		}
		for _, res := range loaded {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			logger.Debug("checking", "target", res.Target.String(), "edges", res.EdgeCount())
			results = append(results, checked{
				task:    in.task,
				edges:   res.EdgeCount(),
				outcome: checker.Check(ctx, res),
			})
		}
	}
	prog.done(fmt.Sprintf("Checked %d configurations", len(results)))
	return results, nil
}

// skipInputs reports every planned input as skipped. Inputs are never read,
// so a missing or malformed report cannot fail a disabled check.
func skipInputs(ctx context.Context, cfg *Config, args []string, configuration, projectPath string, logger compat.Logger) []checked {
	inputs, err := planInputs(cfg, args, configuration, logger)
	if err != nil {
		logger.Debug("nothing planned", "err", err)
		return nil
	}
	checker := compat.Checker{Disabled: true, Logger: logger}
	out := make([]checked, len(inputs))
	for i, in := range inputs {
		res := &resolution.Result{Target: resolution.Target{ProjectPath: projectPath, Configuration: in.configuration}}
		out[i] = checked{task: in.task, outcome: checker.Check(ctx, res)}
	}
	return out
}

// planInputs turns positional arguments, or the config's [[input]] entries
// when there are none, into check inputs.
func planInputs(cfg *Config, args []string, configuration string, logger compat.Logger) ([]checkInput, error) {
	if configuration != "" {
		if err := composeerr.ValidateConfigurationName(configuration); err != nil {
			return nil, err
		}
	}

	if len(args) > 0 {
		inputs := make([]checkInput, len(args))
		for i, a := range args {
			inputs[i] = checkInput{source: a, configuration: configuration}
		}
		return inputs, nil
	}

	var inputs []checkInput
	for _, in := range cfg.Inputs {
		ci := checkInput{source: in.Path, configuration: in.Configuration}
		if in.URL != "" {
			ci.source = in.URL
		}
		if in.Target != "" {
			target, _, _ := cfg.target(in.Target)
			compilation := in.Compilation
			if compilation == "" {
				compilation = compat.MainCompilation
			}
			if !compat.ShouldCheck(target) {
				logger.Debug("target not checked", "target", target.Name, "platform", target.Platform)
				continue
			}
			ci.task = compat.TaskName(target, compilation)
			if ci.configuration == "" {
				ci.configuration = compat.ConfigurationName(target, compilation)
			}
		}
		if configuration != "" {
			if ci.configuration != "" && ci.configuration != configuration {
				continue
			}
			ci.configuration = configuration
		}
		inputs = append(inputs, ci)
	}
	if len(inputs) == 0 {
		return nil, composeerr.New(composeerr.ErrCodeInvalidInput, "nothing to check: pass report files or declare [[input]] entries in %s", defaultConfigFile)
	}
	return inputs, nil
}

// loadInput reads in and keeps the results matching its configuration.
func (c *CLI) loadInput(ctx context.Context, fetcher *httputil.Fetcher, in checkInput, format pkgio.Format, fallback resolution.Target) ([]*resolution.Result, error) {
	var (
		results []*resolution.Result
		err     error
	)
	if in.isURL() {
		status := startFetchStatus(ctx, c.statusWriter(), in.source)
		f := *fetcher
		logRetry := f.Backoff.OnRetry
		f.Backoff.OnRetry = func(attempt, max int, delay time.Duration, err error) {
			status.retrying(attempt, max, delay, err)
			if logRetry != nil {
				logRetry(attempt, max, delay, err)
			}
		}
		var data []byte
		data, err = f.Fetch(ctx, in.source)
		status.Stop()
		if err == nil {
			results, err = pkgio.Load(data, format, fallback)
		}
	} else {
		results, err = pkgio.LoadFile(in.source, format, fallback)
	}
	if err != nil {
		return nil, err
	}
	return selectConfiguration(results, in)
}

// selectConfiguration keeps the results for in.configuration. An unnamed
// result takes the requested name. Without a requested name every result
// is kept.
func selectConfiguration(results []*resolution.Result, in checkInput) ([]*resolution.Result, error) {
	if in.configuration == "" {
		return results, nil
	}
	var out []*resolution.Result
	for _, r := range results {
		switch r.Target.Configuration {
		case "":
			r.Target.Configuration = in.configuration
			out = append(out, r)
		case in.configuration:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, composeerr.New(composeerr.ErrCodeInvalidInput, "configuration %q not found in %s", in.configuration, in.source)
	}
	return out, nil
}

func (c *CLI) printCheckSummary(results []checked, rep *report.Report) {
	w := c.stdout
	if len(results) == 0 {
		printInfo(w, "No configurations checked")
		return
	}

	rows := make([]summaryRow, len(results))
	for i, r := range results {
		o := r.outcome
		name := r.task
		if name == "" {
			name = projectLabel(o.Target.ProjectPath)
		}
		row := summaryRow{
			name:          name,
			configuration: o.Target.Configuration,
			edges:         r.edges,
			framework:     len(o.Framework),
			skiko:         len(o.Skiko),
			status:        statusOK,
		}
		switch {
		case o.Skipped:
			row.status = statusSkipped
		case len(o.Recovered) > 0:
			row.status = statusRecovered
		case o.Warnings() > 0:
			row.status = statusWarning
		}
		rows[i] = row
	}

	fmt.Fprintln(w, StyleTitle.Render("Compose compatibility"))
	fmt.Fprintln(w, renderSummary(rows))

	framework, skiko := rep.Totals()
	switch {
	case framework+skiko == 0:
		printSuccess(w, "No incompatibilities found")
	default:
		printWarning(w, "%d Compose and %d Skiko findings", framework, skiko)
	}
	printDetail(w, "Expected version: %s", rep.ExpectedVersion)
	printDetail(w, "Run: %s", rep.ID)
}

// printOutput lists a written file; JSON output keeps stdout machine-readable.
func (c *CLI) printOutput(format, path string) {
	if format == formatText {
		printFile(c.stdout, path)
	}
}

func projectLabel(path string) string {
	if path == "" {
		return ":"
	}
	return path
}
