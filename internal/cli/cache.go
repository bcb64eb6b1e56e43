package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/composecheck/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of downloaded dependency reports",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := httputil.NewCache("", defaultCacheTTL)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := cache.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo(c.stdout, "Cache is empty")
				return nil
			}
			printSuccess(c.stdout, "Cleared %d cached entries", count)
			printDetail(c.stdout, "Directory: %s", cache.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := httputil.DefaultCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.stdout, dir)
			return nil
		},
	}
}
