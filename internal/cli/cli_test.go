package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/observability"
)

// isolate points config, cache and dotenv lookups at temporary directories
// and clears LABYRINTH_* overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "LABYRINTH_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Cleanup(observability.Reset)
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"generate", "algorithms", "view", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Version == "" {
		t.Error("root command has no version")
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)

	observability.Cache().OnCacheHit(context.Background(), "svg")
	if !strings.Contains(buf.String(), "cache hit") {
		t.Errorf("debug log = %q, want cache hit event", buf.String())
	}
}

func TestAlgorithmsCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "algorithms")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	for _, name := range []string{"binary-tree", "sidewinder"} {
		if !strings.Contains(out, name) {
			t.Errorf("algorithms output missing %q:\n%s", name, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out, "labyrinth") {
		t.Error("bash completion does not mention labyrinth")
	}

	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
