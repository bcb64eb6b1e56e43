package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/composecheck/pkg/compat"
)

// tasksCommand lists the check tasks derived from the configured targets.
func (c *CLI) tasksCommand() *cobra.Command {
	var configPath, projectDir string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the check tasks for the configured Kotlin targets",
		Long: `List one check task per [[target]] compilation in composecheck.toml, with the
configuration it audits. Metadata and Android targets are listed without a task
because they are never checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, projectDir)
			if err != nil {
				return err
			}
			rows := planTasks(cfg)
			if len(rows) == 0 {
				printInfo(c.stdout, "No targets declared in %s", defaultConfigFile)
				return nil
			}
			fmt.Fprintln(c.stdout, renderTasks(rows))
			printDetail(c.stdout, "Tracked: %s", strings.Join(compat.FrameworkLibraries(), ", "))
			printDetail(c.stdout, "Skiko: %s", compat.SkikoLibrary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: <project-dir>/composecheck.toml)")
	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "directory holding composecheck.toml")
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagDirname("project-dir")

	return cmd
}

// planTasks applies the registration rules to every declared target.
func planTasks(cfg *Config) []taskRow {
	var rows []taskRow
	for _, tc := range cfg.Targets {
		target, compilations, _ := cfg.target(tc.Name)
		if !compat.ShouldCheck(target) {
			rows = append(rows, taskRow{target: target.Name, note: skipReason(target)})
			continue
		}
		for _, comp := range compilations {
			rows = append(rows, taskRow{
				target:        target.Name,
				compilation:   comp,
				configuration: compat.ConfigurationName(target, comp),
				task:          compat.TaskName(target, comp),
			})
		}
	}
	return rows
}

func skipReason(t compat.KotlinTarget) string {
	switch {
	case t.Platform == compat.PlatformCommon:
		return "metadata target"
	case t.Platform == compat.PlatformAndroidJVM, t.AndroidLibrary:
		return "android target"
	}
	return "not checked"
}
