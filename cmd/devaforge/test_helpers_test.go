package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devaforge/internal/testsupport"
)

type cliTestEnv struct {
	root       string
	configPath string
	banksRoot  string
	outputRoot string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("DEVAFORGE_ROOT", "")
	t.Setenv("DEVAFORGE_LOG_LEVEL", "")

	root := filepath.Join(base, "workspace")
	return &cliTestEnv{
		root:       root,
		configPath: filepath.Join(base, "devaforge.toml"),
		banksRoot:  filepath.Join(root, "generated", "banks"),
		outputRoot: filepath.Join(root, "output", "bank"),
	}
}

func (e *cliTestEnv) writeBank(t *testing.T, dirName, manifestText string, audio ...string) string {
	t.Helper()
	return testsupport.WriteBank(t, e.banksRoot, dirName, manifestText, audio...)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--root", env.root}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
