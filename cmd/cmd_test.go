package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/service"
)

var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

// testRun captures everything a command writes and the exit code it asks for.
type testRun struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
}

func setupCmd(t *testing.T, cfg config.Config) *testRun {
	t.Helper()
	services, err := service.NewServices(context.Background(), service.Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Now:        func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}

	r := &testRun{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	d := cli.NewDeps(services, cfg)
	d.Stdout = r.stdout
	d.Stderr = r.stderr
	d.Stdin = strings.NewReader("")
	d.Exit = func(code int) { r.exitCode = code }
	d.Sleep = func(time.Duration) {}
	r.deps = d

	origStderr, origExit, origNow := stderr, exitFunc, now
	stderr = r.stderr
	exitFunc = func(code int) { r.exitCode = code }
	now = func() time.Time { return testNow }

	SetDeps(d)
	t.Cleanup(func() {
		ResetDeps()
		stderr, exitFunc, now = origStderr, origExit, origNow
	})
	return r
}

// setupMemory runs commands over an in-memory journal.
func setupMemory(t *testing.T) *testRun {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendMemory
	cfg.Presets = map[string]config.PresetConfig{
		"run": {Category: "exercise", Title: "Evening run", Values: map[string]string{"exercise_type": "running"}},
	}
	return setupCmd(t, cfg)
}

// setupLocal runs commands over a JSONL file in a temp directory.
func setupLocal(t *testing.T) *testRun {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendLocal
	cfg.Local.Path = filepath.Join(t.TempDir(), "entries.jsonl")
	return setupCmd(t, cfg)
}

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return rootCmd.ExecuteContext(context.Background())
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (r *testRun) add(t *testing.T, args ...string) {
	t.Helper()
	if err := execute(t, append([]string{"add"}, args...)...); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if r.exitCode != 0 {
		t.Fatalf("add exited with %d: %s", r.exitCode, r.stderr.String())
	}
}
