package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"devaforge/internal/config"
)

func TestLoadDefaultConfigResolvesAgainstWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEVAFORGE_ROOT", "")
	t.Setenv("DEVAFORGE_LOG_LEVEL", "")
	workdir := t.TempDir()
	t.Chdir(workdir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	root, err := filepath.EvalSymlinks(cfg.Paths.Root)
	if err != nil {
		t.Fatalf("eval root: %v", err)
	}
	wantRoot, _ := filepath.EvalSymlinks(workdir)
	if root != wantRoot {
		t.Fatalf("unexpected root: got %q want %q", root, wantRoot)
	}
	if got, want := cfg.BanksRoot(), filepath.Join(cfg.Paths.Root, "generated", "banks"); got != want {
		t.Fatalf("unexpected banks root: got %q want %q", got, want)
	}
	if got, want := cfg.OutputRoot(), filepath.Join(cfg.Paths.Root, "output", "bank"); got != want {
		t.Fatalf("unexpected output root: got %q want %q", got, want)
	}
	if cfg.Archive.Extension != "devabank" {
		t.Fatalf("unexpected archive extension: %q", cfg.Archive.Extension)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("DEVAFORGE_ROOT", "")
	t.Setenv("DEVAFORGE_LOG_LEVEL", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "devaforge.toml")

	type payload struct {
		Paths struct {
			Root      string `toml:"root"`
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Archive struct {
			Extension string `toml:"extension"`
		} `toml:"archive"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.Root = tempDir
	custom.Paths.OutputDir = "dist"
	custom.Archive.Extension = ".ZIP"
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.OutputRoot() != filepath.Join(tempDir, "dist") {
		t.Fatalf("unexpected output root %q", cfg.OutputRoot())
	}
	if cfg.Archive.Extension != "zip" {
		t.Fatalf("expected normalized extension, got %q", cfg.Archive.Extension)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "devaforge.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error for unknown field")
	}
}

func TestEnvOverridesRootAndLevel(t *testing.T) {
	root := t.TempDir()
	t.Setenv("DEVAFORGE_ROOT", root)
	t.Setenv("DEVAFORGE_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("expected root from env, got %q", cfg.Paths.Root)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected level from env, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"level":     func(c *config.Config) { c.Logging.Level = "verbose" },
		"extension": func(c *config.Config) { c.Archive.Extension = "tar.gz" },
		"same dirs": func(c *config.Config) { c.Paths.OutputDir = c.Paths.BanksDir },
		"empty dir": func(c *config.Config) { c.Paths.BanksDir = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.Root = t.TempDir()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSetRootRebasesRelativeDirectories(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir()
	if err := cfg.SetRoot(root); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if cfg.BanksRoot() != filepath.Join(root, "generated", "banks") {
		t.Fatalf("unexpected banks root %q", cfg.BanksRoot())
	}
	if cfg.HistoryPath() != filepath.Join(root, ".devaforge", "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
	if err := cfg.SetRoot("  "); err == nil {
		t.Fatal("expected error for blank root")
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := config.Default()
	if err := cfg.SetRoot(t.TempDir()); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.OutputRoot(), filepath.Dir(cfg.HistoryPath())} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "banks_dir") {
		t.Fatalf("sample config missing banks_dir: %s", contents)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
