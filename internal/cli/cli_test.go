package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testCLI returns a CLI writing logs and output to buffers, isolated from
// the caller's environment and cache.
func testCLI(t *testing.T) (c *CLI, stdout, logs *bytes.Buffer) {
	t.Helper()
	t.Setenv(envDisable, "")
	t.Setenv(envExpectedVersion, "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	stdout, logs = &bytes.Buffer{}, &bytes.Buffer{}
	return &CLI{Logger: newLogger(logs, LogDebug), stdout: stdout, status: io.Discard}, stdout, logs
}

// execute runs the root command with args.
func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _, _ := testCLI(t)
	root := c.RootCommand()

	for _, name := range []string{"check", "tasks", "export", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			c, stdout, _ := testCLI(t)
			if err := execute(c, "completion", shell); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(stdout.String(), "composecheck") {
				t.Errorf("%s completion should mention composecheck", shell)
			}
		})
	}

	c, _, _ := testCLI(t)
	if err := execute(c, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestCompletionOffersFlagValues(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"check", "--format", ""}, []string{"text", "json"}},
		{[]string{"check", "--input-format", ""}, []string{"auto", "gradle", "json"}},
	}
	for _, tt := range tests {
		c, stdout, _ := testCLI(t)
		if err := execute(c, append([]string{cobra.ShellCompRequestCmd}, tt.args...)...); err != nil {
			t.Fatalf("complete %v: %v", tt.args, err)
		}
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		if len(lines) != len(tt.want)+1 {
			t.Fatalf("complete %v = %q", tt.args, lines)
		}
		for i, want := range tt.want {
			if lines[i] != want {
				t.Errorf("complete %v [%d] = %q, want %q", tt.args, i, lines[i], want)
			}
		}
	}
}

func TestErrorMessage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.toml", `expected = "1.0"`)
	_, err := loadConfig(path, "")

	want := fmt.Sprintf("Error [INVALID_CONFIG]: config %s: unknown key %q", path, "expected")
	if got := ErrorMessage(err); got != want {
		t.Errorf("ErrorMessage() = %q, want %q", got, want)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"), "")
	if got := ErrorMessage(err); !strings.HasPrefix(got, "Error [FILE_NOT_FOUND]: config ") || strings.Count(got, "FILE_NOT_FOUND") != 1 {
		t.Errorf("ErrorMessage() = %q", got)
	}

	if got := ErrorMessage(ErrWarnings); got != "Error: compatibility warnings found" {
		t.Errorf("ErrorMessage(ErrWarnings) = %q", got)
	}
}
