package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout of a bank workspace.
type Paths struct {
	Root      string `toml:"root"`
	BanksDir  string `toml:"banks_dir"`
	OutputDir string `toml:"output_dir"`
}

// Archive contains settings for produced bank archives.
type Archive struct {
	Extension string `toml:"extension"`
}

// History contains settings for the build history ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for devaforge.
//
// Configuration sections:
//   - Paths: workspace root plus bank source and archive output directories
//   - Archive: archive file extension
//   - History: SQLite build ledger
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Archive Archive `toml:"archive"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has its
// root expanded to an absolute path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// SetRoot replaces the workspace root, typically from the --root flag.
func (c *Config) SetRoot(root string) error {
	expanded, err := expandPath(strings.TrimSpace(root))
	if err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if expanded == "" {
		return errors.New("paths.root: must not be empty")
	}
	c.Paths.Root = expanded
	return nil
}

// BanksRoot returns the absolute directory scanned for bank sources.
func (c *Config) BanksRoot() string {
	return c.resolve(c.Paths.BanksDir)
}

// OutputRoot returns the absolute directory receiving built archives.
func (c *Config) OutputRoot() string {
	return c.resolve(c.Paths.OutputDir)
}

// HistoryPath returns the absolute path of the build ledger database.
func (c *Config) HistoryPath() string {
	return c.resolve(c.History.Path)
}

func (c *Config) resolve(value string) string {
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(c.Paths.Root, value)
}

// EnsureDirectories creates the output directory and, when history is enabled,
// the directory holding the ledger database.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.OutputRoot()}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.HistoryPath()))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
