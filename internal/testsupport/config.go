package testsupport

import (
	"path/filepath"
	"testing"

	"devaforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted at a unique temp directory per test.
// History is disabled unless WithHistory is passed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Root = base
	cfgVal.History.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithHistory enables the build ledger inside the test root.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
		b.cfg.History.Path = filepath.Join(b.baseDir, ".devaforge", "history.db")
	}
}

// WithExtension overrides the archive extension.
func WithExtension(ext string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Extension = ext
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.Root
}
