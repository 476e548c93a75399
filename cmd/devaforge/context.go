package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"devaforge/internal/bank"
	"devaforge/internal/config"
	"devaforge/internal/history"
	"devaforge/internal/logging"
)

type commandContext struct {
	configFlag *string
	rootFlag   *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, rootFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		rootFlag:   rootFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if c.rootFlag != nil && strings.TrimSpace(*c.rootFlag) != "" {
			if err := cfg.SetRoot(*c.rootFlag); err != nil {
				c.configErr = err
				return
			}
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds a logger writing to the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func (c *commandContext) layout() (bank.Layout, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return bank.Layout{}, err
	}
	return bank.LayoutFromConfig(cfg), nil
}

// openHistory returns nil without error when the ledger is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// withBuilder runs fn with a Builder wired to the configured logger and
// ledger, closing the ledger afterwards.
func (c *commandContext) withBuilder(cmd *cobra.Command, fn func(*bank.Builder) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}

	opts := []bank.Option{bank.WithLogger(logger)}
	store, err := c.openHistory()
	if err != nil {
		logging.WarnWithContext(logger, "build history unavailable", "history_open",
			logging.String(logging.FieldImpact, "builds will not be recorded"),
			logging.Error(err),
		)
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, bank.WithRecorder(store))
	}
	return fn(bank.NewBuilder(bank.LayoutFromConfig(cfg), opts...))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
