package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Root) == "" {
		return errors.New("paths.root must be set")
	}
	if strings.TrimSpace(c.Paths.BanksDir) == "" {
		return errors.New("paths.banks_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.BanksRoot() == c.OutputRoot() {
		return fmt.Errorf("paths.output_dir must differ from paths.banks_dir (both resolve to %q)", c.OutputRoot())
	}
	return nil
}

func (c *Config) validateArchive() error {
	ext := c.Archive.Extension
	if strings.ContainsAny(ext, `./\ `) {
		return fmt.Errorf("archive.extension %q must be a bare extension without separators", ext)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
