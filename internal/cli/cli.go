package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/composecheck/pkg/buildinfo"
	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/httputil"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "composecheck"

	// defaultConfigFile is looked up in the project directory when --config
	// is not given.
	defaultConfigFile = appName + ".toml"

	// defaultCacheTTL is how long fetched artifacts are reused.
	defaultCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// stdout receives command output (summaries, reports, task lists).
	stdout io.Writer
	// status receives transient progress lines, such as download status.
	status io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdout: os.Stdout,
		status: w,
	}
}

func (c *CLI) statusWriter() io.Writer {
	if c.status == nil {
		return os.Stderr
	}
	return c.status
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// ErrorMessage renders err for the terminal, tagged with its code when it
// carries one: "Error [FILE_NOT_FOUND]: open deps.txt: no such file".
func ErrorMessage(err error) string {
	if code := composeerr.GetCode(err); code != "" {
		return fmt.Sprintf("Error [%s]: %s", code, composeerr.UserMessage(err))
	}
	return "Error: " + err.Error()
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "composecheck audits Compose Multiplatform runtime library versions",
		Long: `composecheck inspects resolved Gradle dependency configurations and warns when
Compose Multiplatform runtime libraries don't match the expected version, or when
Skiko was silently upgraded to an incompatible release.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.stdout)

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.tasksCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Fetcher Factory
// =============================================================================

// newFetcher creates a fetcher for remote inputs. Cache setup failures
// degrade to uncached fetching.
func (c *CLI) newFetcher(noCache, refresh bool) *httputil.Fetcher {
	var cache *httputil.Cache
	if !noCache {
		var err error
		if cache, err = httputil.NewCache("", defaultCacheTTL); err != nil {
			c.Logger.Debug("cache disabled", "error", err)
			cache = nil
		}
	}
	f := httputil.NewFetcher(cache)
	f.Refresh = refresh
	f.Backoff.OnRetry = func(retry, max int, delay time.Duration, err error) {
		c.Logger.Warn("fetch failed, retrying", "attempt", retry, "of", max, "in", delay, "error", err)
	}
	return f
}
