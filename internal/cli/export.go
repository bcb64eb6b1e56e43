package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	pkgio "github.com/matzehuels/composecheck/pkg/io"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

type exportOpts struct {
	output        string
	configuration string
	projectPath   string
}

// exportCommand converts a Gradle dependencies report into the JSON
// resolution format accepted by check.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <report>",
		Short: "Convert a Gradle dependencies report to JSON",
		Long: `Convert the output of ./gradlew <path>:dependencies --configuration <name>
into the JSON resolution format. Pass "-" to read the report from stdin.

A report holding several configurations needs --configuration to pick one.`,
		Example: `  ./gradlew :app:dependencies --configuration jvmRuntimeClasspath > deps.txt
  composecheck export deps.txt -o jvmRuntimeClasspath.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.configuration, "configuration", "", "configuration to export")
	cmd.Flags().StringVarP(&opts.projectPath, "project-path", "p", "", "project path when the report has no project banner")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, source string, opts exportOpts) error {
	logger := loggerFromContext(cmd.Context())

	if err := composeerr.ValidateProjectPath(opts.projectPath); err != nil {
		return err
	}
	if opts.configuration != "" {
		if err := composeerr.ValidateConfigurationName(opts.configuration); err != nil {
			return err
		}
	}

	var (
		results []*resolution.Result
		err     error
	)
	if source == "-" {
		results, err = pkgio.ReadGradleReport(os.Stdin)
	} else {
		results, err = pkgio.ImportGradleReport(source)
	}
	if err != nil {
		return err
	}
	for _, r := range results {
		if !r.ProjectNamed {
			r.Target.ProjectPath = opts.projectPath
		}
	}

	results, err = selectConfiguration(results, checkInput{source: source, configuration: opts.configuration})
	if err != nil {
		return err
	}
	if len(results) > 1 {
		names := make([]string, len(results))
		for i, r := range results {
			names[i] = r.Target.Configuration
		}
		return composeerr.New(composeerr.ErrCodeInvalidInput,
			"%s holds %d configurations (%s); pick one with --configuration", source, len(results), strings.Join(names, ", "))
	}
	res := results[0]
	logger.Debug("exporting", "target", res.Target.String(), "edges", res.EdgeCount())

	if opts.output == "" || opts.output == "-" {
		return pkgio.WriteJSON(res, c.stdout)
	}
	if err := pkgio.ExportJSON(res, opts.output); err != nil {
		return err
	}
	printSuccess(c.stdout, "Exported %d edges of %s", res.EdgeCount(), res.Target.String())
	printFile(c.stdout, opts.output)
	return nil
}
