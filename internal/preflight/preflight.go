package preflight

import (
	"path/filepath"

	"devaforge/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the path checks for cfg. The banks directory must already
// exist; output and history locations only need to be creatable.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Banks directory", cfg.BanksRoot()),
		CheckCreatable("Output directory", cfg.OutputRoot()),
	}
	if cfg.History.Enabled {
		results = append(results, CheckCreatable("History directory", filepath.Dir(cfg.HistoryPath())))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
