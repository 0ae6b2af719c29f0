package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/modoterra/headless/pkg/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(t, rootCmd) })
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags puts every flag of cmd and its subcommands back to its default
// so that one Execute does not leak into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "headless-demo dev (none)") {
		t.Errorf("got %q", out)
	}
}

func TestRunWithoutTerminal(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "--no-terminal", "--frames", "3", "--fps", "1000", "--workers", "0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "demo started (frame_rate=1000, workers=0, log=debug)") {
		t.Errorf("captured log missing startup message:\n%s", out)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("log: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "--config", path, "--no-terminal", "--frames", "1", "--fps", "1000", "--workers", "0")
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headless.yaml")

	if _, stderr, err := execute(t, "config", "init", "--output", path); err != nil {
		t.Fatal(err)
	} else if !strings.Contains(stderr, `"msg":"wrote config"`) {
		t.Errorf("stderr: %q", stderr)
	}

	if _, _, err := execute(t, "config", "init", "--output", path); err == nil {
		t.Error("expected init to refuse an existing file")
	}

	_, stderr, err := execute(t, "config", "validate", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, `"msg":"config is valid"`) {
		t.Errorf("stderr: %q", stderr)
	}
}

func TestConfigValidateInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: 0\nworkers: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, "config", "validate", path)
	if err == nil || !strings.Contains(err.Error(), "2 config error(s)") {
		t.Fatalf("expected 2 errors, got %v", err)
	}
	if strings.Count(stderr, `"msg":"invalid config"`) != 2 {
		t.Errorf("stderr: %q", stderr)
	}
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, _, err := execute(t, "--no-terminal", "--frames", "2", "--fps", "500", "--workers", "0"); err != nil {
		t.Fatal(err)
	}
	resetFlags(t, rootCmd)
	if frames != 0 || fps != 0 || workers != 0 || noTerminal || configPath != "" {
		t.Errorf("flags kept values: frames=%d fps=%d workers=%d no-terminal=%v config=%q", frames, fps, workers, noTerminal, configPath)
	}
	if rootCmd.Flags().Changed("fps") {
		t.Error("--fps still marked as changed")
	}
}

func TestRunPrintsLogFromLastFrameAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.FrameRate = 1000
	cfg.Workers = 1

	var out bytes.Buffer
	err := runApp(context.Background(), cfg, demoOptions{frames: 3, noTerminal: true, out: &out})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"demo started (frame_rate=1000, workers=1, log=debug)",
		"frame limit reached (frames=3)",
		"app exit requested",
		"worker stopping (worker=0)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("printed log is missing %q:\n%s", want, out.String())
		}
	}
}
