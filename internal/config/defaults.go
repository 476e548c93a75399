package config

const (
	defaultConfigPath       = "~/.config/devaforge/config.toml"
	projectConfigName       = "devaforge.toml"
	defaultRoot             = "."
	defaultBanksDir         = "generated/banks"
	defaultOutputDir        = "output/bank"
	defaultArchiveExtension = "devabank"
	defaultHistoryEnabled   = true
	defaultHistoryPath      = ".devaforge/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root:      defaultRoot,
			BanksDir:  defaultBanksDir,
			OutputDir: defaultOutputDir,
		},
		Archive: Archive{
			Extension: defaultArchiveExtension,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
