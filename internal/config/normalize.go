package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeArchive()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("DEVAFORGE_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Root = value
	}
	c.Paths.Root = strings.TrimSpace(c.Paths.Root)
	if c.Paths.Root == "" {
		c.Paths.Root = defaultRoot
	}
	var err error
	if c.Paths.Root, err = expandPath(c.Paths.Root); err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if c.Paths.BanksDir, err = normalizeRelative(c.Paths.BanksDir, defaultBanksDir); err != nil {
		return fmt.Errorf("paths.banks_dir: %w", err)
	}
	if c.Paths.OutputDir, err = normalizeRelative(c.Paths.OutputDir, defaultOutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeArchive() {
	ext := strings.TrimSpace(c.Archive.Extension)
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = defaultArchiveExtension
	}
	c.Archive.Extension = strings.ToLower(ext)
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.Path, err = normalizeRelative(c.History.Path, defaultHistoryPath); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("DEVAFORGE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeRelative keeps root-relative paths relative so a later --root
// override still applies; absolute and tilde paths are expanded immediately.
func normalizeRelative(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if strings.HasPrefix(value, "~") || filepath.IsAbs(value) {
		return expandPath(value)
	}
	return filepath.Clean(value), nil
}
